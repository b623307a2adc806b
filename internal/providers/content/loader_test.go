package content

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileYAML = `profile:
  name: Jane Doe
  role: "  Platform Engineer "
  summary: Builds things & ships them.
  email: jane@example.com
skills:
  languages: [Go, Rust]
  technologies: [Kubernetes]
  architectures: [Event Sourcing]
`

const projectsTOML = `
[[projects]]
id = "ledger"
name = "Ledger"
short_description = "Double-entry bookkeeping."
full_description = "An append-only ledger."
tech_stack = ["Go", "Postgres"]
architecture = "Hexagonal"
`

const experienceJSON = `{
  "experiences": [
    {"company": "Acme", "role": "SRE", "period": "2022 - 2024", "highlights": ["Cut pages by half."]}
  ],
  "education": [
    {"institution": "State U", "degree": "B.Sc.", "period": "2018 - 2022", "notable": "Systems track."}
  ]
}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

const pattern = "**/*.{yaml,yml,toml,json}"

func TestLoadDirMergesFormats(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"profile.yaml":         profileYAML,
		"work/projects.toml":   projectsTOML,
		"work/experience.json": experienceJSON,
		"README.md":            "# ignored",
	})

	p, err := NewLoader(nil).LoadDir(dir, pattern)
	require.NoError(t, err)

	repo := NewRepository(p)
	assert.Equal(t, "Jane Doe", repo.Profile().Name)
	assert.Equal(t, "Platform Engineer", repo.Profile().Role)
	assert.Equal(t, "Builds things & ships them.", repo.Profile().Summary)

	ledger, ok := repo.FindProject("ledger")
	require.True(t, ok)
	assert.Equal(t, []string{"Go", "Postgres"}, ledger.TechStack)

	require.Len(t, repo.Experiences(), 1)
	assert.Equal(t, "Acme", repo.Experiences()[0].Company)
	require.Len(t, repo.Education(), 1)
	assert.Equal(t, []string{"Go", "Rust"}, repo.Skills().Languages)

	assert.Equal(t, Summary{Owner: "Jane Doe", Projects: 1, Experiences: 1, Education: 1, Skills: 4}, repo.Summary())
}

func TestLoadDirErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "no documents",
			files:   map[string]string{"notes.txt": "hello"},
			wantErr: ErrNoDocuments,
		},
		{
			name:    "missing profile",
			files:   map[string]string{"projects.toml": projectsTOML},
			wantErr: ErrMissingProfile,
		},
		{
			name: "duplicate profile",
			files: map[string]string{
				"a.yaml": profileYAML,
				"b.yaml": profileYAML,
			},
			wantErr: ErrDuplicate,
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"profile.yaml": profileYAML,
				"a.toml":       projectsTOML,
				"b.toml":       projectsTOML,
			},
			wantErr: ErrDuplicate,
		},
		{
			name: "binary document",
			files: map[string]string{
				"profile.yaml": profileYAML,
				"image.json":   "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01",
			},
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)

			_, err := NewLoader(nil).LoadDir(dir, pattern)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDirValidates(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"profile.yaml": profileYAML,
		"bad.yaml": `projects:
  - id: nameless
    image_url: not-a-url
`,
	})

	_, err := NewLoader(nil).LoadDir(dir, pattern)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid content")
}

func TestLoadDirRejectsMarkup(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"html element", "Built with <b>care</b>"},
		{"script", "<script>alert(1)</script>"},
		{"generic type", "Uses std::vector<int> buffers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				"profile.yaml": profileYAML,
				"projects.json": `{"projects": [{"id": "buffers", "name": "Buffers", "full_description": ` +
					strconv.Quote(tt.description) + `}]}`,
			})

			_, err := NewLoader(nil).LoadDir(dir, pattern)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "FullDescription")
			assert.Contains(t, err.Error(), "plaintext")
		})
	}
}

func TestLoadDirKeepsEscapedTextVerbatim(t *testing.T) {
	const description = "Renders &lt;script&gt;alert(1)&lt;/script&gt; as text, a < b & c"
	dir := writeFiles(t, map[string]string{
		"profile.yaml": profileYAML,
		"projects.yaml": `projects:
  - id: escaper
    name: Escaper
    full_description: "` + description + `"
`,
	})

	p, err := NewLoader(nil).LoadDir(dir, pattern)
	require.NoError(t, err)

	project, ok := NewRepository(p).FindProject("escaper")
	require.True(t, ok)
	assert.Equal(t, description, project.FullDescription)
	assert.NotContains(t, project.FullDescription, "<script>")
}

func TestLoadDirValidatesProjectIDs(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"lower case", "xshop", false},
		{"hyphens and digits", "focus-todo_2", false},
		{"upper case", "XShop", true},
		{"whitespace inside", "bad id", true},
		{"path characters", "../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				"profile.yaml":  profileYAML,
				"projects.json": `{"projects": [{"id": ` + strconv.Quote(tt.id) + `, "name": "Shop"}]}`,
			})

			p, err := NewLoader(nil).LoadDir(dir, pattern)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "projectid")
				return
			}
			require.NoError(t, err)
			_, ok := NewRepository(p).FindProject(tt.id)
			assert.True(t, ok)
		})
	}
}

func TestDefaultPortfolio(t *testing.T) {
	repo := Default()

	assert.Equal(t, "Ahmed Gaafar", repo.Profile().Name)

	ids := make([]string, 0, 3)
	for _, p := range repo.Projects() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"airwallex-plugin", "xshop", "focus-todo"}, ids)

	xshop, ok := repo.FindProject("xshop")
	require.True(t, ok)
	assert.Equal(t, "XShop eCommerce", xshop.Name)
	assert.Equal(t, []string{"Flutter", "Dart", "Firebase", "State Management", "Rest API"}, xshop.TechStack)

	assert.Len(t, repo.Experiences(), 3)
	assert.Equal(t, "Contributed to 'Alex. Kitchen' supporting community meal distribution.",
		repo.Experiences()[2].Highlights[0])
	assert.Len(t, repo.Education(), 1)
	assert.Equal(t, []string{"Flutter/Dart", "Kotlin", "Java", "C++", "Arduino", "Javascript", "HTML/CSS"},
		repo.Skills().Languages)

	_, ok = repo.FindProject("missing")
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	repo, err := Open("", pattern, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.Summary().Projects)

	dir := writeFiles(t, map[string]string{"profile.yaml": profileYAML})
	repo, err = Open(dir, pattern, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", repo.Profile().Name)
	assert.Empty(t, repo.Projects())
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := Default()

	projects := repo.Projects()
	projects[0].Name = "mutated"

	assert.NotEqual(t, "mutated", repo.Projects()[0].Name)
}
