package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// ErrBusy is returned by Submit while a previous command is still running
var ErrBusy = errors.New("terminal busy")

// Content is the read-only portfolio the interpreter renders
type Content interface {
	Profile() types.Profile
	Projects() []types.Project
	FindProject(id string) (types.Project, bool)
	Experiences() []types.Experience
	Education() []types.Education
	Skills() types.Skills
}

// Translator turns free text into commands of the local grammar.
// Translate returns "" or "unknown" when nothing matches.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	Suggest(ctx context.Context, text string) (string, error)
	DeepDive(ctx context.Context, projectID string) (string, error)
}

// OpenFunc requests a window. The interpreter never inspects the result.
type OpenFunc func(app types.App)

// Interpreter executes terminal lines and owns the transcript
type Interpreter struct {
	mu    sync.Mutex
	lines []types.TerminalLine // Protected by mu
	busy  bool                 // Protected by mu

	content    Content
	translator Translator
	open       OpenFunc
	onChange   func()
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// NewInterpreter creates an interpreter with an empty transcript
func NewInterpreter(content Content, translator Translator, open OpenFunc) *Interpreter {
	if open == nil {
		open = func(types.App) {}
	}
	return &Interpreter{
		content:    content,
		translator: translator,
		open:       open,
		onChange:   func() {},
		logger:     zap.NewNop(),
	}
}

// WithTranscript seeds the transcript
func (i *Interpreter) WithTranscript(lines []types.TerminalLine) *Interpreter {
	i.lines = append([]types.TerminalLine(nil), lines...)
	return i
}

// WithMetrics adds metrics tracking to the interpreter
func (i *Interpreter) WithMetrics(metrics *monitoring.Metrics) *Interpreter {
	i.metrics = metrics
	return i
}

// WithLogger sets the interpreter's logger
func (i *Interpreter) WithLogger(logger *zap.Logger) *Interpreter {
	if logger != nil {
		i.logger = logger
	}
	return i
}

// WithOnChange registers a callback fired after every transcript or busy change.
// It is called without the interpreter lock held.
func (i *Interpreter) WithOnChange(fn func()) *Interpreter {
	if fn != nil {
		i.onChange = fn
	}
	return i
}

// Submit runs one line. Blank lines are ignored and yield a completed task.
// Lines handled by the local grammar complete before Submit returns; anything
// that needs the translator runs on its own goroutine. While a task is
// running, Submit returns ErrBusy and leaves the transcript untouched.
//
// ctx bounds translator calls. The interpreter imposes no deadline of its own.
func (i *Interpreter) Submit(ctx context.Context, line string) (*Task, error) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return completedTask(PathIgnored), nil
	}

	i.mu.Lock()
	if i.busy {
		i.mu.Unlock()
		return nil, ErrBusy
	}
	i.busy = true
	i.lines = append(i.lines, types.TerminalLine{Role: types.RoleInput, Text: raw})
	i.mu.Unlock()
	i.onChange()

	task := newTask()
	cmd, local := Parse(raw)

	if local && !cmd.NeedsReasoning() {
		i.execute(ctx, cmd)
		i.finish(task, PathLocal)
		return task, nil
	}

	go func() {
		path := PathLocal
		if local {
			if err := i.execute(ctx, cmd); err != nil {
				path = i.fail("deep_dive", err)
			}
		} else {
			path = i.fallback(ctx, raw)
		}
		i.finish(task, path)
	}()

	return task, nil
}

// fallback asks the translator for a command when the local grammar failed
func (i *Interpreter) fallback(ctx context.Context, raw string) Path {
	translated, err := i.translator.Translate(ctx, raw)
	if err != nil {
		return i.fail("translate", err)
	}

	translated = strings.ToLower(strings.TrimSpace(translated))
	if translated != "" && translated != "unknown" && translated != strings.ToLower(raw) {
		i.append(types.RoleAI, fmt.Sprintf(translationPattern, translated))

		cmd, ok := Parse(translated)
		if !ok {
			i.logger.Debug("translation outside local grammar",
				zap.String("input", raw),
				zap.String("translated", translated),
			)
			return PathAI
		}
		if err := i.execute(ctx, cmd); err != nil {
			return i.fail("deep_dive", err)
		}
		return PathAI
	}

	suggestion, err := i.translator.Suggest(ctx, raw)
	if err != nil {
		return i.fail("suggest", err)
	}
	if suggestion = strings.TrimSpace(suggestion); suggestion == "" {
		suggestion = defaultSuggestion
	}

	i.append(types.RoleError, "command not found: "+raw)
	i.append(types.RoleOutput, fmt.Sprintf("Did you mean: %s?", suggestion))
	return PathUnknown
}

// execute runs a parsed command. Only translator errors are returned.
func (i *Interpreter) execute(ctx context.Context, cmd Command) error {
	switch cmd.Verb {
	case VerbHelp:
		i.append(types.RoleOutput, renderHelp(i.content.Profile()))

	case VerbWhoami:
		i.append(types.RoleOutput, renderWhoami(i.content.Profile()))

	case VerbEducation:
		for _, edu := range i.content.Education() {
			i.append(types.RoleOutput, renderEducation(edu))
		}

	case VerbExperience:
		for _, exp := range i.content.Experiences() {
			i.append(types.RoleOutput, renderExperience(exp)...)
		}

	case VerbSkills:
		i.append(types.RoleOutput, renderSkills(i.content.Skills())...)

	case VerbProjects:
		i.append(types.RoleOutput, renderProjectList(i.content.Projects())...)

	case VerbDescribe:
		project, ok := i.content.FindProject(cmd.ProjectID)
		if !ok {
			i.append(types.RoleError, renderProjectNotFound(cmd.ProjectID))
			return nil
		}
		i.append(types.RoleOutput, renderDescribe(project)...)
		if cmd.DeepDive {
			i.append(types.RoleAI, deepDiveNotice)
			analysis, err := i.translator.DeepDive(ctx, project.ID)
			if err != nil {
				return err
			}
			i.append(types.RoleAI, analysis)
		}

	case VerbRun:
		project, ok := i.content.FindProject(cmd.ProjectID)
		if !ok {
			i.append(types.RoleError, renderProjectNotFound(cmd.ProjectID))
			return nil
		}
		i.open(types.ProjectApp{Project: project})
		i.append(types.RoleOutput, renderRun(project))

	case VerbClear:
		i.Clear()

	case VerbContact:
		i.append(types.RoleOutput, renderContact(i.content.Profile()))
	}
	return nil
}

// fail downgrades a translator error to a single transcript line
func (i *Interpreter) fail(op string, err error) Path {
	i.logger.Warn("reasoning call failed", zap.String("op", op), zap.Error(err))
	i.append(types.RoleError, reasoningFailure)
	return PathError
}

func (i *Interpreter) finish(task *Task, path Path) {
	i.mu.Lock()
	i.busy = false
	i.mu.Unlock()

	if i.metrics != nil {
		i.metrics.RecordCommand(string(path))
	}
	task.complete(path)
	i.onChange()
}

func (i *Interpreter) append(role types.LineRole, texts ...string) {
	i.mu.Lock()
	for _, text := range texts {
		i.lines = append(i.lines, types.TerminalLine{Role: role, Text: text})
	}
	i.mu.Unlock()
	i.onChange()
}

// Clear empties the transcript
func (i *Interpreter) Clear() {
	i.mu.Lock()
	i.lines = nil
	i.mu.Unlock()
	i.onChange()
}

// Lines returns a copy of the transcript
func (i *Interpreter) Lines() []types.TerminalLine {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]types.TerminalLine{}, i.lines...)
}

// Busy reports whether a task is in flight
func (i *Interpreter) Busy() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.busy
}

// View returns the render projection of the transcript
func (i *Interpreter) View(windowID string) types.TerminalView {
	i.mu.Lock()
	defer i.mu.Unlock()
	return types.TerminalView{
		WindowID: windowID,
		Lines:    append([]types.TerminalLine{}, i.lines...),
		Busy:     i.busy,
	}
}
