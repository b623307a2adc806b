package desktop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// Snapshot is the render projection of a desktop
type Snapshot struct {
	DesktopID string               `json:"desktop_id"`
	Version   uint64               `json:"version"`
	Windows   []types.WindowView   `json:"windows"`
	FocusedID string               `json:"focused_id,omitempty"`
	Running   []types.Kind         `json:"running"`
	Terminals []types.TerminalView `json:"terminals"`
	Stats     types.Stats          `json:"stats"`
}

type terminalSession struct {
	interp *terminal.Interpreter
	ctx    context.Context
	cancel context.CancelFunc
}

// Shell is one visitor desktop
type Shell struct {
	id         string
	ctx        context.Context
	cancel     context.CancelFunc
	manager    *window.Manager
	drag       *window.Drag
	content    terminal.Content
	translator terminal.Translator
	metrics    *monitoring.Metrics
	logger     *zap.Logger

	mu        sync.Mutex
	terminals map[string]*terminalSession // Window ID -> session, protected by mu

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int

	version    atomic.Uint64
	lastActive atomic.Int64
	now        func() time.Time
}

// ShellConfig carries the collaborators of a shell
type ShellConfig struct {
	ID         string
	Layout     window.Layout
	Content    terminal.Content
	Translator terminal.Translator
	Metrics    *monitoring.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewShell creates a desktop with one terminal window open
func NewShell(parent context.Context, cfg ShellConfig) *Shell {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ctx, cancel := context.WithCancel(parent)
	manager := window.NewManager(cfg.Layout).
		WithMetrics(cfg.Metrics).
		WithLogger(cfg.Logger)

	s := &Shell{
		id:         cfg.ID,
		ctx:        ctx,
		cancel:     cancel,
		manager:    manager,
		drag:       window.NewDrag(manager),
		content:    cfg.Content,
		translator: cfg.Translator,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With(zap.String("desktop_id", cfg.ID)),
		terminals:  make(map[string]*terminalSession),
		subs:       make(map[int]chan struct{}),
		now:        cfg.Now,
	}
	s.Touch()
	s.Open(types.TerminalApp{})
	return s
}

// ID returns the desktop ID
func (s *Shell) ID() string {
	return s.id
}

// LastActive returns the time of the last visitor interaction
func (s *Shell) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Open routes an open request into the window manager.
// A newly created terminal window gets a fresh interpreter.
// s.mu is held across the manager call so window and session change together.
func (s *Shell) Open(app types.App) types.Window {
	s.Touch()

	s.mu.Lock()
	win := s.manager.Open(app)
	if win.Kind() == types.KindTerminal {
		if _, ok := s.terminals[win.ID]; !ok {
			s.terminals[win.ID] = s.newTerminal(win.ID)
		}
	}
	s.mu.Unlock()

	s.notify()
	return win
}

// OpenKind resolves a kind and optional project ID into an app and opens it
func (s *Shell) OpenKind(kind types.Kind, projectID string) (types.Window, error) {
	if kind == types.KindProject {
		project, ok := s.content.FindProject(projectID)
		if !ok {
			return types.Window{}, fmt.Errorf("%w: project %q", ErrUnknownApp, projectID)
		}
		return s.Open(types.ProjectApp{Project: project}), nil
	}

	app, ok := types.SingletonApp(kind)
	if !ok {
		return types.Window{}, fmt.Errorf("%w: %q", ErrUnknownApp, kind)
	}
	return s.Open(app), nil
}

// Focus brings a window to the front
func (s *Shell) Focus(windowID string) {
	s.Touch()
	s.manager.Focus(windowID)
	s.notify()
}

// Minimize hides a window
func (s *Shell) Minimize(windowID string) {
	s.Touch()
	s.manager.Minimize(windowID)
	s.notify()
}

// Move sets a window position
func (s *Shell) Move(windowID string, x, y int) {
	s.Touch()
	s.manager.UpdatePosition(windowID, x, y)
	s.notify()
}

// Close destroys a window and cancels its terminal task, if any
func (s *Shell) Close(windowID string) {
	s.Touch()

	s.mu.Lock()
	if term, ok := s.terminals[windowID]; ok {
		term.cancel()
		delete(s.terminals, windowID)
	}
	s.manager.Close(windowID)
	s.mu.Unlock()

	s.notify()
}

// CloseAll destroys every window and wipes every transcript
func (s *Shell) CloseAll() {
	s.Touch()

	s.mu.Lock()
	for id, term := range s.terminals {
		term.cancel()
		term.interp.Clear()
		delete(s.terminals, id)
	}
	s.manager.CloseAll()
	s.mu.Unlock()

	s.notify()
}

// BeginDrag starts dragging a window from a pointer position. The window is focused first.
func (s *Shell) BeginDrag(windowID string, x, y int) bool {
	s.Touch()
	ok := s.drag.Begin(windowID, types.Position{X: x, Y: y})
	s.notify()
	return ok
}

// DragTo moves the dragged window with the pointer
func (s *Shell) DragTo(x, y int) {
	if s.drag.Active() == "" {
		return
	}
	s.Touch()
	s.drag.Move(types.Position{X: x, Y: y})
	s.notify()
}

// EndDrag finishes the drag
func (s *Shell) EndDrag() {
	s.drag.End()
}

// Submit sends a line to a terminal window's interpreter
func (s *Shell) Submit(windowID, line string) (*terminal.Task, error) {
	s.Touch()

	term, err := s.terminal(windowID)
	if err != nil {
		return nil, err
	}
	return term.interp.Submit(term.ctx, line)
}

// Transcript returns a terminal window's transcript
func (s *Shell) Transcript(windowID string) (types.TerminalView, error) {
	term, err := s.terminal(windowID)
	if err != nil {
		return types.TerminalView{}, err
	}
	return term.interp.View(windowID), nil
}

func (s *Shell) terminal(windowID string) (*terminalSession, error) {
	s.mu.Lock()
	term, ok := s.terminals[windowID]
	s.mu.Unlock()
	if ok {
		return term, nil
	}

	if _, exists := s.manager.Get(windowID); exists {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, windowID)
	}
	return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, windowID)
}

// Snapshot returns the current render projection
func (s *Shell) Snapshot() Snapshot {
	views := s.manager.Views()

	terminals := make([]types.TerminalView, 0, 1)
	s.mu.Lock()
	for _, view := range views {
		if term, ok := s.terminals[view.ID]; ok {
			terminals = append(terminals, term.interp.View(view.ID))
		}
	}
	s.mu.Unlock()

	return Snapshot{
		DesktopID: s.id,
		Version:   s.version.Load(),
		Windows:   views,
		FocusedID: s.manager.FocusedID(),
		Running:   s.manager.RunningKinds(),
		Terminals: terminals,
		Stats:     s.manager.Stats(),
	}
}

// Subscribe returns a channel signalled after changes. Signals coalesce.
// The returned function unsubscribes.
func (s *Shell) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Done is closed when the shell is shut down
func (s *Shell) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Shutdown cancels running tasks and closes every window
func (s *Shell) Shutdown() {
	s.cancel()
	s.CloseAll()
	s.logger.Debug("desktop shut down")
}

func (s *Shell) newTerminal(windowID string) *terminalSession {
	ctx, cancel := context.WithCancel(s.ctx)
	interp := terminal.NewInterpreter(s.content, s.translator, func(app types.App) {
		s.Open(app)
	}).
		WithTranscript(terminal.BootLines(s.content.Profile())).
		WithMetrics(s.metrics).
		WithLogger(s.logger.With(zap.String("window_id", windowID))).
		WithOnChange(s.notify)

	return &terminalSession{interp: interp, ctx: ctx, cancel: cancel}
}

// Touch records visitor activity
func (s *Shell) Touch() {
	s.lastActive.Store(s.now().UnixNano())
}

func (s *Shell) notify() {
	s.version.Add(1)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
