package terminal

import (
	"strings"
)

// Verb is the first token of a structured command
type Verb string

const (
	VerbHelp       Verb = "help"
	VerbWhoami     Verb = "whoami"
	VerbEducation  Verb = "education"
	VerbExperience Verb = "experience"
	VerbSkills     Verb = "skills"
	VerbProjects   Verb = "projects"
	VerbDescribe   Verb = "describe"
	VerbRun        Verb = "run"
	VerbClear      Verb = "clear"
	VerbContact    Verb = "contact"
)

// DeepDiveFlag requests a reasoning deep dive on project describe
const DeepDiveFlag = "--ai"

// Command is a parsed line of the local grammar
type Command struct {
	Verb      Verb
	ProjectID string
	DeepDive  bool
}

// NeedsReasoning reports whether executing the command calls the translator
func (c Command) NeedsReasoning() bool {
	return c.Verb == VerbDescribe && c.DeepDive
}

// Parse matches text against the local grammar. Matching is case-insensitive
// and the first whitespace-delimited token is the verb. ok is false when the
// line is not handled locally.
func Parse(text string) (cmd Command, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	parts := strings.Fields(lower)
	if len(parts) == 0 {
		return Command{}, false
	}

	switch parts[0] {
	case "help":
		return Command{Verb: VerbHelp}, true
	case "whoami":
		return Command{Verb: VerbWhoami}, true
	case "education":
		return Command{Verb: VerbEducation}, true
	case "experience":
		return Command{Verb: VerbExperience}, true
	case "skills":
		return Command{Verb: VerbSkills}, true
	case "clear":
		return Command{Verb: VerbClear}, true
	case "contact":
		return Command{Verb: VerbContact}, true
	case "projects", "project":
		return parseProject(parts, lower)
	default:
		return Command{}, false
	}
}

func parseProject(parts []string, lower string) (Command, bool) {
	if len(parts) == 1 || parts[1] == "list" {
		return Command{Verb: VerbProjects}, true
	}

	var id string
	if len(parts) > 2 {
		id = parts[2]
	}

	switch parts[1] {
	case "describe":
		return Command{
			Verb:      VerbDescribe,
			ProjectID: id,
			DeepDive:  strings.Contains(lower, DeepDiveFlag),
		}, true
	case "run":
		return Command{Verb: VerbRun, ProjectID: id}, true
	default:
		return Command{}, false
	}
}
