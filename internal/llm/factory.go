package llm

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/persona-insights/internal/config"
)

// NewProvider creates the provider selected by the configuration.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, nil), nil

	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		provider, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
