package content

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/utils"
)

//go:embed portfolio.yaml
var embeddedPortfolio []byte

var (
	// ErrNoDocuments is returned when the glob matches nothing
	ErrNoDocuments = errors.New("no content documents found")
	// ErrDuplicate is returned when two documents define the same record
	ErrDuplicate = errors.New("duplicate content")
	// ErrMissingProfile is returned when no document defines a profile
	ErrMissingProfile = errors.New("profile not defined")
	// ErrUnsupportedFormat is returned for files that are not text documents
	ErrUnsupportedFormat = errors.New("unsupported content format")
)

// Loader discovers, decodes and validates portfolio documents.
// Display text is stored verbatim; fields carrying markup are rejected.
type Loader struct {
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewLoader creates a loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
	_ = l.validate.RegisterValidation("plaintext", l.isPlainText)
	_ = l.validate.RegisterValidation("projectid", isProjectID)
	return l
}

// isPlainText reports whether the strict policy leaves the text unchanged.
// Entities are compared decoded since the policy re-escapes text nodes.
func (l *Loader) isPlainText(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return html.UnescapeString(l.sanitizer.Sanitize(s)) == html.UnescapeString(s)
}

// isProjectID accepts IDs the terminal grammar and REST routes can address:
// the shared ID pattern, lower case only.
func isProjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utils.ValidateID(s, "id", true) == nil && s == strings.ToLower(s)
}

// Open returns the repository for dir, or the embedded portfolio when dir is empty
func Open(dir, pattern string, logger *zap.Logger) (*Repository, error) {
	loader := NewLoader(logger)

	var (
		p   types.Portfolio
		err error
	)
	if dir == "" {
		p, err = loader.LoadEmbedded()
	} else {
		p, err = loader.LoadDir(dir, pattern)
	}
	if err != nil {
		return nil, err
	}
	return NewRepository(p), nil
}

// Default returns the embedded portfolio repository
func Default() *Repository {
	p, err := NewLoader(nil).LoadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("embedded portfolio invalid: %v", err))
	}
	return NewRepository(p)
}

// LoadEmbedded decodes the portfolio compiled into the binary
func (l *Loader) LoadEmbedded() (types.Portfolio, error) {
	var p types.Portfolio
	if err := decode(".yaml", embeddedPortfolio, &p); err != nil {
		return types.Portfolio{}, fmt.Errorf("embedded portfolio: %w", err)
	}
	return l.finalize(p)
}

// LoadDir merges every document under dir matching pattern.
// Documents are applied in lexical path order.
func (l *Loader) LoadDir(dir, pattern string) (types.Portfolio, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("glob failed: %w", err)
	}
	sort.Strings(matches)

	var merged types.Portfolio
	loaded := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return types.Portfolio{}, err
		}
		if info.IsDir() {
			continue
		}

		doc, err := l.readDocument(path)
		if err != nil {
			return types.Portfolio{}, err
		}
		if err := merge(&merged, doc); err != nil {
			return types.Portfolio{}, fmt.Errorf("%s: %w", path, err)
		}
		loaded++
		l.logger.Debug("content document loaded", zap.String("path", path))
	}

	if loaded == 0 {
		return types.Portfolio{}, fmt.Errorf("%w: %s", ErrNoDocuments, filepath.Join(dir, pattern))
	}
	return l.finalize(merged)
}

func (l *Loader) readDocument(path string) (types.Portfolio, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("mime detection failed: %w", err)
	}
	if !isText(mtype) {
		return types.Portfolio{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedFormat, path, mtype.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Portfolio{}, err
	}

	var doc types.Portfolio
	if err := decode(filepath.Ext(path), data, &doc); err != nil {
		return types.Portfolio{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// finalize trims and validates a merged portfolio
func (l *Loader) finalize(p types.Portfolio) (types.Portfolio, error) {
	if p.Profile == nil {
		return types.Portfolio{}, ErrMissingProfile
	}
	if p.Skills == nil {
		p.Skills = &types.Skills{}
	}

	trim(&p)

	if err := l.validate.Struct(p); err != nil {
		return types.Portfolio{}, fmt.Errorf("invalid content: %w", err)
	}
	return p, nil
}

func decode(ext string, data []byte, v *types.Portfolio) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".toml":
		return toml.Unmarshal(data, v)
	case ".json":
		return sonic.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") || m.Is("application/toml") || m.Is("application/json") {
			return true
		}
	}
	return false
}

// merge folds doc into dst. Profile and skills may be defined once;
// list sections are appended and project IDs must stay unique.
func merge(dst *types.Portfolio, doc types.Portfolio) error {
	if doc.Profile != nil {
		if dst.Profile != nil {
			return fmt.Errorf("%w: profile", ErrDuplicate)
		}
		dst.Profile = doc.Profile
	}
	if doc.Skills != nil {
		if dst.Skills != nil {
			return fmt.Errorf("%w: skills", ErrDuplicate)
		}
		dst.Skills = doc.Skills
	}

	for _, p := range doc.Projects {
		for _, existing := range dst.Projects {
			if existing.ID == p.ID {
				return fmt.Errorf("%w: project %q", ErrDuplicate, p.ID)
			}
		}
		dst.Projects = append(dst.Projects, p)
	}
	dst.Experiences = append(dst.Experiences, doc.Experiences...)
	dst.Education = append(dst.Education, doc.Education...)
	return nil
}

// trim strips surrounding whitespace from every display string
func trim(p *types.Portfolio) {
	clean := func(s *string) {
		*s = strings.TrimSpace(*s)
	}
	cleanAll := func(list []string) {
		for i := range list {
			clean(&list[i])
		}
	}

	prof := p.Profile
	for _, s := range []*string{&prof.Name, &prof.Role, &prof.Summary, &prof.Location} {
		clean(s)
	}

	for i := range p.Projects {
		pr := &p.Projects[i]
		for _, s := range []*string{&pr.ID, &pr.Name, &pr.ShortDescription, &pr.FullDescription, &pr.Architecture, &pr.AIUsage} {
			clean(s)
		}
		cleanAll(pr.TechStack)
	}
	for i := range p.Experiences {
		e := &p.Experiences[i]
		clean(&e.Company)
		clean(&e.Role)
		clean(&e.Period)
		cleanAll(e.Highlights)
	}
	for i := range p.Education {
		e := &p.Education[i]
		clean(&e.Institution)
		clean(&e.Degree)
		clean(&e.Period)
		clean(&e.Notable)
	}
	cleanAll(p.Skills.Languages)
	cleanAll(p.Skills.Technologies)
	cleanAll(p.Skills.Architectures)
}
