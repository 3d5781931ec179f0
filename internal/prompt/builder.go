package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

//go:embed templates/*.yml
var templateFS embed.FS

const (
	keyPersona    = "persona"
	keyChallenges = "challenges"
)

// DefaultLanguage is the answer language when none is configured.
const DefaultLanguage = "English"

type templateFile struct {
	Version     int    `yaml:"version"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// Builder renders the insight prompt for one report schema version.
type Builder struct {
	version  int
	segments []segment
}

// NewBuilder loads the embedded template for the given schema version.
func NewBuilder(version int, language string) (*Builder, error) {
	return LoadBuilder(templateFS, path.Join("templates", fmt.Sprintf("v%d.yml", version)), language)
}

// LoadBuilder loads a template file from fsys. Loading fails on unknown or missing placeholders,
// so Build itself cannot fail.
func LoadBuilder(fsys fs.FS, filePath string, language string) (*Builder, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompt yaml: %w", err)
	}
	if strings.TrimSpace(file.Template) == "" {
		return nil, fmt.Errorf("%s: empty template", filePath)
	}

	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	static := map[string]string{
		"language":       language,
		"traits":         strings.Join(models.Traits, ", "),
		"scores_example": scoresExample(),
	}
	segments, err := compile(file.Template, static, []string{keyPersona, keyChallenges})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	return &Builder{version: file.Version, segments: segments}, nil
}

// Version is the report schema version the template asks for.
func (b *Builder) Version() int {
	return b.version
}

// Build interpolates the persona and challenge text into the template.
func (b *Builder) Build(personaText, challengesText string) string {
	return render(b.segments, map[string]string{
		keyPersona:    personaText,
		keyChallenges: challengesText,
	})
}

func scoresExample() string {
	parts := make([]string, 0, len(models.Traits))
	for i, trait := range models.Traits {
		parts = append(parts, fmt.Sprintf("%q: %d", trait, i%models.MaxTraitScore+1))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
