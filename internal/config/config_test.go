package config

import "testing"

func TestBuildConfigDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("INSIGHT_SCHEMA_VERSION", "")
	t.Setenv("PORT", "")
	t.Setenv("INSIGHT_LANGUAGE", "")

	cfg := buildConfig()
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != defaultOpenAIModel {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("unexpected api key: %s", cfg.LLM.APIKey)
	}
	if cfg.Insight.SchemaVersion != 2 || cfg.Insight.Language != "English" {
		t.Fatalf("unexpected insight config: %+v", cfg.Insight)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildConfigGemini(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LLM_MODEL", "")

	cfg := buildConfig()
	if cfg.LLM.Provider != ProviderGemini || cfg.LLM.APIKey != "g-key" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.LLM.Model != defaultGeminiModel {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg := &Config{
		LLM:     LLMConfig{Provider: ProviderOpenAI},
		Insight: InsightConfig{SchemaVersion: 2},
		HTTP:    HTTPConfig{Port: 8080},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	base := Config{
		LLM:     LLMConfig{Provider: ProviderOpenAI, APIKey: "k"},
		Insight: InsightConfig{SchemaVersion: 2},
		HTTP:    HTTPConfig{Port: 8080},
	}

	provider := base
	provider.LLM.Provider = "anthropic"
	if err := provider.Validate(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}

	schema := base
	schema.Insight.SchemaVersion = 3
	if err := schema.Validate(); err == nil {
		t.Fatalf("expected error for schema version")
	}

	port := base
	port.HTTP.Port = 0
	if err := port.Validate(); err == nil {
		t.Fatalf("expected error for port")
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret(""); got != "<missing>" {
		t.Fatalf("unexpected mask: %s", got)
	}
	if got := maskSecret("abc"); got != "***" {
		t.Fatalf("unexpected mask: %s", got)
	}
	if got := maskSecret("sk-123456"); got != "sk***56" {
		t.Fatalf("unexpected mask: %s", got)
	}
}

func TestHTTPBaseURL(t *testing.T) {
	if got := (HTTPConfig{Port: 9000}).BaseURL(); got != "http://localhost:9000" {
		t.Fatalf("unexpected base url %q", got)
	}
	if got := (HTTPConfig{Port: 9000, PublicURL: "https://insights.example.com/"}).BaseURL(); got != "https://insights.example.com" {
		t.Fatalf("unexpected base url %q", got)
	}
}
