package types

// OpenRequest asks the window manager to open (or toggle) an app
type OpenRequest struct {
	Kind      Kind   `json:"kind" binding:"required"`
	ProjectID string `json:"project_id,omitempty"`
}

// PositionRequest moves a window
type PositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CommandRequest submits one terminal line
type CommandRequest struct {
	Line string `json:"line"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string `json:"type"`
	WindowID  string `json:"window_id,omitempty"`
	Kind      Kind   `json:"kind,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Line      string `json:"line,omitempty"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
}
