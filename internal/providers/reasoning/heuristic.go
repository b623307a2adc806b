package reasoning

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// IntentEntry maps natural language onto one command of the grammar
type IntentEntry struct {
	Command  string           // Canonical command (e.g. "skills")
	Synonyms []string         // Words that indicate this command
	Patterns []*regexp.Regexp // Phrases that indicate this command
	Priority int              // Higher priority wins when several entries match
}

// IntentCorpus is the offline mapping of free text to commands
var IntentCorpus = []IntentEntry{
	{
		Command:  "whoami",
		Synonyms: []string{"who", "yourself", "bio", "biography", "introduce", "introduction", "background"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bwho\s+(are|is)\b`),
			regexp.MustCompile(`(?i)\babout\s+(you|yourself|him|the\s+owner)\b`),
		},
		Priority: 50,
	},
	{
		Command:  "education",
		Synonyms: []string{"study", "studied", "studying", "degree", "university", "college", "school", "academic", "education", "graduate"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bwhere\s+did\s+.+\s+(study|graduate)\b`)},
		Priority: 70,
	},
	{
		Command:  "experience",
		Synonyms: []string{"work", "worked", "job", "jobs", "career", "employment", "history", "organizations", "roles", "resume", "cv"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bwhere\s+(have|has|did)\s+.+\s+work`)},
		Priority: 70,
	},
	{
		Command:  "skills",
		Synonyms: []string{"skill", "skills", "stack", "languages", "language", "technologies", "tools", "proficiency", "expertise"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bwhat\s+(can|does)\s+.+\s+(code|program|know)\b`)},
		Priority: 70,
	},
	{
		Command:  "contact",
		Synonyms: []string{"contact", "email", "mail", "reach", "linkedin", "github", "hire", "links", "socials"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bget\s+in\s+touch\b`)},
		Priority: 80,
	},
	{
		Command:  "projects",
		Synonyms: []string{"projects", "portfolio", "built", "apps", "work samples", "showcase"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(show|list)\s+(me\s+)?(all\s+)?(your\s+|the\s+)?projects\b`)},
		Priority: 60,
	},
	{
		Command:  "clear",
		Synonyms: []string{"clear", "wipe", "flush", "cls"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bclean\s+(up\s+)?the\s+(screen|terminal)\b`)},
		Priority: 90,
	},
	{
		Command:  "help",
		Synonyms: []string{"commands", "usage", "manual"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bwhat\s+can\s+(i|you)\s+do\b`)},
		Priority: 40,
	},
}

// launchPattern marks requests to open a project window rather than describe it
var launchPattern = regexp.MustCompile(`(?i)\b(run|open|launch|start|deploy|demo|show)\b`)

// genericNameWords never identify a project on their own
var genericNameWords = map[string]bool{
	"app": true, "application": true, "plugin": true, "time": true, "management": true,
	"mobile": true, "payment": true, "project": true, "system": true,
}

var wordPattern = regexp.MustCompile(`[a-z0-9+#/-]+`)

// Heuristic translates free text without a remote service
type Heuristic struct {
	projects Projects
}

// NewHeuristic creates an offline translator
func NewHeuristic(projects Projects) *Heuristic {
	return &Heuristic{projects: projects}
}

// Translate maps text onto a command. Project mentions win over intents.
func (h *Heuristic) Translate(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", nil
	}

	if project, ok := h.matchProject(lower); ok {
		if launchPattern.MatchString(lower) {
			return "project run " + project.ID, nil
		}
		return "project describe " + project.ID, nil
	}

	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(lower, -1) {
		words[w] = true
	}

	best, bestPriority := "", -1
	for _, entry := range IntentCorpus {
		if entry.Priority <= bestPriority || !entry.matches(lower, words) {
			continue
		}
		best, bestPriority = entry.Command, entry.Priority
	}
	return best, nil
}

func (e IntentEntry) matches(lower string, words map[string]bool) bool {
	for _, p := range e.Patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	for _, s := range e.Synonyms {
		if strings.Contains(s, " ") {
			if strings.Contains(lower, s) {
				return true
			}
		} else if words[s] {
			return true
		}
	}
	return false
}

// matchProject finds a project named by ID or by a distinctive name word
func (h *Heuristic) matchProject(lower string) (types.Project, bool) {
	words := wordPattern.FindAllString(lower, -1)
	for _, project := range h.projects.Projects() {
		if strings.Contains(lower, project.ID) {
			return project, true
		}
		for _, nameWord := range wordPattern.FindAllString(strings.ToLower(project.Name), -1) {
			if len(nameWord) < 4 || genericNameWords[nameWord] {
				continue
			}
			for _, w := range words {
				if w == nameWord {
					return project, true
				}
			}
		}
	}
	return types.Project{}, false
}

// Suggest returns the closest command name. Subsequence matches are
// preferred, then edit distance; "help" when nothing is close.
func (h *Heuristic) Suggest(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return fallbackSuggest, nil
	}

	if matches := fuzzy.Find(lower, Commands); len(matches) > 0 {
		return matches[0].Str, nil
	}

	type candidate struct {
		command  string
		distance int
	}
	candidates := make([]candidate, 0, len(Commands))
	for _, cmd := range Commands {
		candidates = append(candidates, candidate{cmd, editDistance(lower, cmd)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	best := candidates[0]
	if best.distance > max(len(lower), len(best.command))/2 {
		return fallbackSuggest, nil
	}
	return best.command, nil
}

// DeepDive composes an analysis from the project record
func (h *Heuristic) DeepDive(ctx context.Context, projectID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	project, ok := h.projects.FindProject(projectID)
	if !ok {
		return projectNotFound, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Engineering review: %s\n", project.Name)
	if project.Architecture != "" {
		fmt.Fprintf(&b, "Architecture: %s\n", project.Architecture)
	}
	if len(project.TechStack) > 0 {
		fmt.Fprintf(&b, "Stack surface: %d components (%s)\n", len(project.TechStack), strings.Join(project.TechStack, ", "))
	}
	if project.AIUsage != "" {
		fmt.Fprintf(&b, "AI usage: %s\n", project.AIUsage)
	}
	b.WriteString("Scaling notes: profile the hot paths before adding layers, keep platform boundaries thin.")
	return b.String(), nil
}

// editDistance is the Levenshtein distance between a and b
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
