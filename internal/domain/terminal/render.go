package terminal

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

const kernelBanner = "DevOS Kernel v1.2.0-stable (Build: 2024.03.15)"

// BootLines returns the transcript a freshly opened desktop terminal starts with
func BootLines(p types.Profile) []types.TerminalLine {
	return []types.TerminalLine{
		{Role: types.RoleOutput, Text: kernelBanner},
		{Role: types.RoleOutput, Text: fmt.Sprintf("User %s authenticated. System ready.", p.Name)},
		{Role: types.RoleOutput, Text: `Type "help" to see available commands or describe what you want in plain English.`},
	}
}

const helpTemplate = `DevOS Command Reference:
  whoami       - Technical summary of %s
  education    - Academic background & honors
  experience   - Professional history & organizations
  skills       - Tech stack & proficiency
  projects     - Engineering portfolio
  project run <id> - Launch visual deployment
  project describe <id> [--ai] - Detailed specs
  clear        - Flush terminal buffer
  contact      - Professional links`

// Transcript messages
const (
	deepDiveNotice     = "Analyzing architectural depth..."
	reasoningFailure   = "reasoning engine error, falling back to local shell"
	defaultSuggestion  = "help"
	translationPattern = `AI translation: executing "%s"...`
)

func renderHelp(p types.Profile) string {
	first, _, _ := strings.Cut(p.Name, " ")
	return fmt.Sprintf(helpTemplate, first)
}

func renderWhoami(p types.Profile) string {
	return fmt.Sprintf("%s\n%s\n\n%s", p.Name, p.Role, p.Summary)
}

func renderEducation(e types.Education) string {
	return fmt.Sprintf("[%s] %s\n%s\n> %s", e.Period, e.Institution, e.Degree, e.Notable)
}

func renderExperience(e types.Experience) []string {
	lines := make([]string, 0, len(e.Highlights)+2)
	lines = append(lines, fmt.Sprintf("[%s] %s at %s", e.Period, e.Role, e.Company))
	for _, h := range e.Highlights {
		lines = append(lines, "  - "+h)
	}
	return append(lines, "")
}

func renderSkills(s types.Skills) []string {
	return []string{
		"Languages: " + strings.Join(s.Languages, ", "),
		"Technologies: " + strings.Join(s.Technologies, ", "),
		"Architectures: " + strings.Join(s.Architectures, ", "),
	}
}

func renderProjectList(projects []types.Project) []string {
	lines := make([]string, 0, len(projects)+1)
	lines = append(lines, "Portfolio Items:")
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("  - %s: %s", p.ID, p.ShortDescription))
	}
	return lines
}

func renderDescribe(p types.Project) []string {
	return []string{
		fmt.Sprintf("Project: %s\n---", p.Name),
		"Overview: " + p.FullDescription,
		"Stack: " + strings.Join(p.TechStack, ", "),
	}
}

func renderRun(p types.Project) string {
	return fmt.Sprintf("Initiating visual container for %s...", p.Name)
}

func renderContact(p types.Profile) string {
	return fmt.Sprintf("Email: %s\nGitHub: %s\nLinkedIn: %s", p.Email, p.Socials.GitHub, p.Socials.LinkedIn)
}

func renderProjectNotFound(id string) string {
	return fmt.Sprintf("project not found: %q", id)
}
