package llm

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/persona-insights/internal/config"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "k", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Fatalf("unexpected provider: %s", p.Name())
	}
	_ = p.Close()

	if _, err := NewProvider(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := NewProvider(context.Background(), config.LLMConfig{Provider: "other", APIKey: "k"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
