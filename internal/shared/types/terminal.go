package types

// LineRole classifies a transcript line
type LineRole string

const (
	RoleInput  LineRole = "input"
	RoleOutput LineRole = "output"
	RoleError  LineRole = "error"
	RoleAI     LineRole = "ai"
)

// TerminalLine is one immutable transcript entry
type TerminalLine struct {
	Role LineRole `json:"type"`
	Text string   `json:"content"`
}

// TerminalView is the rendered projection of a terminal transcript
type TerminalView struct {
	WindowID string         `json:"window_id"`
	Lines    []TerminalLine `json:"lines"`
	Busy     bool           `json:"busy"`
}
