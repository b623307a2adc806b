package reasoning

import (
	"strings"

	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// Projects is the project lookup the translators need
type Projects interface {
	Projects() []types.Project
	FindProject(id string) (types.Project, bool)
}

// Commands lists the grammar offered to translators, in help order
var Commands = []string{
	"help", "whoami", "education", "experience", "skills", "projects",
	"contact", "clear", "project list", "project describe", "project run",
}

const (
	unknownCommand    = "unknown"
	fallbackSuggest   = "help"
	projectNotFound   = "Project not found."
	deepDiveFailedMsg = "Deep dive generation failed."
)

// TranslateRequest is sent to the remote /translate endpoint
type TranslateRequest struct {
	Text     string   `json:"text"`
	Commands []string `json:"commands"`
	Projects []string `json:"projects,omitempty"`
}

// DeepDiveRequest is sent to the remote /deep-dive endpoint
type DeepDiveRequest struct {
	Project types.Project `json:"project"`
}

// CommandResponse is returned by /translate and /suggest
type CommandResponse struct {
	Command string `json:"command"`
}

// DeepDiveResponse is returned by /deep-dive
type DeepDiveResponse struct {
	Analysis string `json:"analysis"`
}

// normalizeCommand lowercases a translation; "unknown" becomes ""
func normalizeCommand(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == unknownCommand {
		return ""
	}
	return s
}

func normalizeSuggestion(s string) string {
	if s = strings.ToLower(strings.TrimSpace(s)); s == "" {
		return fallbackSuggest
	}
	return s
}

func projectIDs(p Projects) []string {
	projects := p.Projects()
	ids := make([]string, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}
	return ids
}
