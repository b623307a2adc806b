package desktop

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or evicted desktop IDs
	ErrSessionNotFound = errors.New("desktop not found")
	// ErrTooManySessions is returned when the session cap is reached
	ErrTooManySessions = errors.New("too many desktops")
	// ErrWindowNotFound is returned for unknown window IDs on read paths
	ErrWindowNotFound = errors.New("window not found")
	// ErrNotTerminal is returned when a command targets a non-terminal window
	ErrNotTerminal = errors.New("window is not a terminal")
	// ErrUnknownApp is returned for open requests naming no app or project
	ErrUnknownApp = errors.New("unknown app")
	// ErrClosed is returned by Create once the registry is shut down
	ErrClosed = errors.New("desktop registry closed")
)
