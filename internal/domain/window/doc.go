// Package window implements the desktop window manager.
//
// The Manager owns the set of open windows and is the only writer of their
// stack order, minimize state and position. Windows are deduplicated by the
// key of their App variant: singleton apps (terminal, about, resume,
// projects) have at most one window, project windows one per project.
//
// Focus model:
//   - Exactly zero or one window holds the frontmost stack order.
//   - Opening or focusing a window demotes every sibling to background.
//   - Minimizing or closing the focused window leaves focus undefined.
//   - Opening the focused, visible window again minimizes it (dock toggle).
//
// Operations on unknown window IDs are no-ops. All methods are safe for
// concurrent use; mutations are serialized by the manager's mutex.
//
// Example Usage:
//
//	m := window.NewManager(window.DefaultLayout())
//	term := m.Open(types.TerminalApp{})
//	m.UpdatePosition(term.ID, 120, 4) // y clamps to the top boundary
package window
