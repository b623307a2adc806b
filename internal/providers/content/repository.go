package content

import (
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// Repository serves an immutable portfolio
type Repository struct {
	portfolio types.Portfolio
	index     map[string]int
}

// NewRepository indexes a portfolio. The portfolio must not be mutated afterwards.
func NewRepository(p types.Portfolio) *Repository {
	index := make(map[string]int, len(p.Projects))
	for i, project := range p.Projects {
		index[project.ID] = i
	}
	return &Repository{portfolio: p, index: index}
}

// Profile returns the owner's profile
func (r *Repository) Profile() types.Profile {
	if r.portfolio.Profile == nil {
		return types.Profile{}
	}
	return *r.portfolio.Profile
}

// Projects returns projects in document order
func (r *Repository) Projects() []types.Project {
	return append([]types.Project(nil), r.portfolio.Projects...)
}

// FindProject looks up a project by ID
func (r *Repository) FindProject(id string) (types.Project, bool) {
	i, ok := r.index[id]
	if !ok {
		return types.Project{}, false
	}
	return r.portfolio.Projects[i], true
}

// Experiences returns experiences in document order
func (r *Repository) Experiences() []types.Experience {
	return append([]types.Experience(nil), r.portfolio.Experiences...)
}

// Education returns education records in document order
func (r *Repository) Education() []types.Education {
	return append([]types.Education(nil), r.portfolio.Education...)
}

// Skills returns the skill groups
func (r *Repository) Skills() types.Skills {
	if r.portfolio.Skills == nil {
		return types.Skills{}
	}
	return *r.portfolio.Skills
}

// Summary counts the records of each section
type Summary struct {
	Owner       string `json:"owner"`
	Projects    int    `json:"projects"`
	Experiences int    `json:"experiences"`
	Education   int    `json:"education"`
	Skills      int    `json:"skills"`
}

// Summary returns record counts
func (r *Repository) Summary() Summary {
	skills := r.Skills()
	return Summary{
		Owner:       r.Profile().Name,
		Projects:    len(r.portfolio.Projects),
		Experiences: len(r.portfolio.Experiences),
		Education:   len(r.portfolio.Education),
		Skills:      len(skills.Languages) + len(skills.Technologies) + len(skills.Architectures),
	}
}
