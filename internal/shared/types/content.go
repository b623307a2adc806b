package types

// Socials holds public profile links
type Socials struct {
	GitHub   string `json:"github" yaml:"github" toml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin" toml:"linkedin"`
	Figma    string `json:"figma,omitempty" yaml:"figma" toml:"figma"`
}

// Profile is the portfolio owner's identity card
type Profile struct {
	Name     string  `json:"name" yaml:"name" toml:"name" validate:"required,plaintext"`
	Role     string  `json:"role" yaml:"role" toml:"role" validate:"required,plaintext"`
	Summary  string  `json:"summary" yaml:"summary" toml:"summary" validate:"plaintext"`
	Email    string  `json:"email" yaml:"email" toml:"email" validate:"omitempty,email"`
	Location string  `json:"location,omitempty" yaml:"location" toml:"location" validate:"plaintext"`
	Socials  Socials `json:"socials" yaml:"socials" toml:"socials"`
}

// Project is a portfolio entry
type Project struct {
	ID               string   `json:"id" yaml:"id" toml:"id" validate:"required,projectid"`
	Name             string   `json:"name" yaml:"name" toml:"name" validate:"required,plaintext"`
	ShortDescription string   `json:"short_description" yaml:"short_description" toml:"short_description" validate:"plaintext"`
	FullDescription  string   `json:"full_description" yaml:"full_description" toml:"full_description" validate:"plaintext"`
	TechStack        []string `json:"tech_stack" yaml:"tech_stack" toml:"tech_stack" validate:"dive,plaintext"`
	Architecture     string   `json:"architecture" yaml:"architecture" toml:"architecture" validate:"plaintext"`
	AIUsage          string   `json:"ai_usage,omitempty" yaml:"ai_usage" toml:"ai_usage" validate:"plaintext"`
	DemoURL          string   `json:"demo_url,omitempty" yaml:"demo_url" toml:"demo_url" validate:"omitempty,url"`
	ImageURL         string   `json:"image_url,omitempty" yaml:"image_url" toml:"image_url" validate:"omitempty,url"`
}

// Experience is a resume entry
type Experience struct {
	Company    string   `json:"company" yaml:"company" toml:"company" validate:"required,plaintext"`
	Role       string   `json:"role" yaml:"role" toml:"role" validate:"required,plaintext"`
	Period     string   `json:"period" yaml:"period" toml:"period" validate:"plaintext"`
	Highlights []string `json:"highlights" yaml:"highlights" toml:"highlights" validate:"dive,plaintext"`
}

// Education is an academic record
type Education struct {
	Institution string `json:"institution" yaml:"institution" toml:"institution" validate:"required,plaintext"`
	Degree      string `json:"degree" yaml:"degree" toml:"degree" validate:"required,plaintext"`
	Period      string `json:"period" yaml:"period" toml:"period" validate:"plaintext"`
	Notable     string `json:"notable" yaml:"notable" toml:"notable" validate:"plaintext"`
}

// Skills groups skill names in display order
type Skills struct {
	Languages     []string `json:"languages" yaml:"languages" toml:"languages" validate:"dive,plaintext"`
	Technologies  []string `json:"technologies" yaml:"technologies" toml:"technologies" validate:"dive,plaintext"`
	Architectures []string `json:"architectures" yaml:"architectures" toml:"architectures" validate:"dive,plaintext"`
}

// Portfolio is the full content document as stored on disk
type Portfolio struct {
	Profile     *Profile     `json:"profile,omitempty" yaml:"profile" toml:"profile"`
	Projects    []Project    `json:"projects,omitempty" yaml:"projects" toml:"projects" validate:"dive"`
	Experiences []Experience `json:"experiences,omitempty" yaml:"experiences" toml:"experiences" validate:"dive"`
	Education   []Education  `json:"education,omitempty" yaml:"education" toml:"education" validate:"dive"`
	Skills      *Skills      `json:"skills,omitempty" yaml:"skills" toml:"skills"`
}
