package terminal

import "context"

// Path records how a submitted line was dispatched
type Path string

const (
	PathIgnored Path = "ignored"
	PathLocal   Path = "local"
	PathAI      Path = "ai"
	PathUnknown Path = "unknown"
	PathError   Path = "error"
)

// Task is the future of one submitted line
type Task struct {
	done chan struct{}
	path Path
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func completedTask(path Path) *Task {
	t := newTask()
	t.complete(path)
	return t
}

func (t *Task) complete(path Path) {
	t.path = path
	close(t.done)
}

// Done is closed once the line has been fully processed
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes or ctx is done
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Path returns the dispatch path. Only meaningful after Done is closed.
func (t *Task) Path() Path {
	select {
	case <-t.done:
		return t.path
	default:
		return ""
	}
}
