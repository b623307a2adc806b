package window

import (
	"sync"

	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// Drag tracks one pointer drag: idle -> dragging -> idle.
// Every move commits a position immediately; there is no batching.
type Drag struct {
	mu       sync.Mutex
	manager  *Manager
	windowID string // Empty when idle
	grab     types.Position
}

// NewDrag creates an idle drag tracker for m
func NewDrag(m *Manager) *Drag {
	return &Drag{manager: m}
}

// Begin focuses the window under the pointer and starts dragging it.
// Returns false when the window does not exist.
func (d *Drag) Begin(windowID string, pointer types.Position) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.manager.Focus(windowID)
	win, ok := d.manager.Get(windowID)
	if !ok {
		d.windowID = ""
		return false
	}

	d.windowID = windowID
	d.grab = types.Position{
		X: pointer.X - win.Position.X,
		Y: pointer.Y - win.Position.Y,
	}
	return true
}

// Move repositions the dragged window under the pointer
func (d *Drag) Move(pointer types.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.windowID == "" {
		return
	}
	d.manager.UpdatePosition(d.windowID, pointer.X-d.grab.X, pointer.Y-d.grab.Y)
}

// End returns the tracker to idle
func (d *Drag) End() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windowID = ""
}

// Active returns the dragged window ID, or "" when idle
func (d *Drag) Active() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windowID
}
