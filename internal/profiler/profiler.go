package profiler

import (
	"context"
	"log/slog"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// Generator sends one prompt to the language model and returns its reply text.
type Generator interface {
	RequestInsights(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder renders the insight prompt.
type PromptBuilder interface {
	Build(personaText, challengesText string) string
	Version() int
}

// Service runs one persona through prompt building, generation and parsing.
type Service struct {
	builder   PromptBuilder
	generator Generator
	logger    *slog.Logger
}

func NewService(builder PromptBuilder, generator Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		builder:   builder,
		generator: generator,
		logger:    logger,
	}
}

// SchemaVersion is the report schema the prompt requests.
func (s *Service) SchemaVersion() int {
	return s.builder.Version()
}

// Prompt renders the prompt for a persona without calling the model.
func (s *Service) Prompt(persona models.PersonaAttributes, challenges models.ChallengeList) string {
	return s.builder.Build(persona.Describe(), challenges.Describe())
}

// GenerateInsights makes exactly one model call. A transport or provider failure is returned as an
// error; a reply that cannot be parsed comes back as an *models.ErrorReport result.
func (s *Service) GenerateInsights(
	ctx context.Context,
	persona models.PersonaAttributes,
	challenges models.ChallengeList,
) (models.Result, error) {
	raw, err := s.generator.RequestInsights(ctx, s.Prompt(persona, challenges))
	if err != nil {
		return nil, err
	}

	result := Parse(raw)
	if errReport, ok := result.(*models.ErrorReport); ok {
		s.logger.Warn("insight_reply_unparseable",
			"kind", errReport.Kind,
			"message", errReport.Message,
			"raw_len", len(raw),
		)
	}
	return result, nil
}
