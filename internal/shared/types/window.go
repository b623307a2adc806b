package types

import "strings"

// Kind identifies which application a window hosts
type Kind string

const (
	KindTerminal    Kind = "terminal"
	KindProject     Kind = "project"
	KindAbout       Kind = "about"
	KindResume      Kind = "resume"
	KindProjectList Kind = "projects"
)

// Stack orders assigned by the window manager
const (
	OrderBackground = 10
	OrderFrontmost  = 100
)

// App is the payload variant of a window. Only ProjectApp carries a project.
type App interface {
	Kind() Kind
	// Key is the dedup key: at most one window exists per key.
	Key() string
}

// TerminalApp is the terminal emulator
type TerminalApp struct{}

// AboutApp is the biography window
type AboutApp struct{}

// ResumeApp is the resume window
type ResumeApp struct{}

// ProjectListApp is the project ledger window
type ProjectListApp struct{}

// ProjectApp is a per-project detail window
type ProjectApp struct {
	Project Project
}

func (TerminalApp) Kind() Kind    { return KindTerminal }
func (AboutApp) Kind() Kind       { return KindAbout }
func (ResumeApp) Kind() Kind      { return KindResume }
func (ProjectListApp) Kind() Kind { return KindProjectList }
func (ProjectApp) Kind() Kind     { return KindProject }

func (TerminalApp) Key() string    { return string(KindTerminal) }
func (AboutApp) Key() string       { return string(KindAbout) }
func (ResumeApp) Key() string      { return string(KindResume) }
func (ProjectListApp) Key() string { return string(KindProjectList) }
func (a ProjectApp) Key() string   { return string(KindProject) + ":" + a.Project.ID }

// SingletonApp returns the variant for a payload-free kind.
// ProjectDetail windows need a project and are never returned here.
func SingletonApp(kind Kind) (App, bool) {
	switch kind {
	case KindTerminal:
		return TerminalApp{}, true
	case KindAbout:
		return AboutApp{}, true
	case KindResume:
		return ResumeApp{}, true
	case KindProjectList:
		return ProjectListApp{}, true
	default:
		return nil, false
	}
}

// Position represents window position on screen
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Window represents an open window instance
type Window struct {
	ID         string   `json:"id"`
	App        App      `json:"-"`
	Minimized  bool     `json:"minimized"`
	StackOrder int      `json:"stack_order"`
	Position   Position `json:"position"`
}

// Kind returns the hosted application kind
func (w Window) Kind() Kind {
	return w.App.Kind()
}

// Project returns the payload of a ProjectDetail window
func (w Window) Project() (Project, bool) {
	p, ok := w.App.(ProjectApp)
	return p.Project, ok
}

// Title returns the title bar text
func (w Window) Title() string {
	if p, ok := w.Project(); ok {
		return "Deploying :: " + p.Name
	}
	return strings.ToUpper(string(w.Kind()))
}

// Frontmost reports whether the window holds the frontmost stack order
func (w Window) Frontmost() bool {
	return w.StackOrder == OrderFrontmost
}

// WindowView is the rendered projection of a window
type WindowView struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	ProjectID  string   `json:"project_id,omitempty"`
	Minimized  bool     `json:"minimized"`
	Focused    bool     `json:"focused"`
	StackOrder int      `json:"stack_order"`
	Position   Position `json:"position"`
}

// View projects a window for rendering
func (w Window) View(focusedID string) WindowView {
	v := WindowView{
		ID:         w.ID,
		Kind:       w.Kind(),
		Title:      w.Title(),
		Minimized:  w.Minimized,
		Focused:    w.ID == focusedID,
		StackOrder: w.StackOrder,
		Position:   w.Position,
	}
	if p, ok := w.Project(); ok {
		v.ProjectID = p.ID
	}
	return v
}

// Stats contains window manager statistics
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	FocusedWindowID  *string `json:"focused_window_id,omitempty"`
}
