package window

import "github.com/GriffinCanCode/DevOS/backend/internal/shared/types"

// Layout describes the screen geometry used to place new windows
type Layout struct {
	ScreenWidth  int
	ScreenHeight int
	WindowWidth  int
	WindowHeight int
	// TopBoundary is the lowest y a title bar may reach (menu bar height).
	TopBoundary int
	CascadeStep int
	CascadeWrap int
}

// DefaultLayout returns the geometry of a 1440x900 desktop
func DefaultLayout() Layout {
	return Layout{
		ScreenWidth:  1440,
		ScreenHeight: 900,
		WindowWidth:  750,
		WindowHeight: 500,
		TopBoundary:  28,
		CascadeStep:  30,
		CascadeWrap:  200,
	}
}

// Place returns the position for a new window given the current window count.
// Windows start at screen center and cascade diagonally, wrapping so the
// offset never drifts off screen.
func (l Layout) Place(count int) types.Position {
	offset := count * l.CascadeStep
	if l.CascadeWrap > 0 {
		offset %= l.CascadeWrap
	}

	return l.Clamp(types.Position{
		X: l.ScreenWidth/2 - l.WindowWidth/2 + offset,
		Y: l.ScreenHeight/2 - l.WindowHeight/2 + offset,
	})
}

// Clamp keeps the title bar below the top chrome boundary
func (l Layout) Clamp(p types.Position) types.Position {
	if p.Y < l.TopBoundary {
		p.Y = l.TopBoundary
	}
	return p
}
