package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultGeminiModel = "gemini-2.5-flash-lite"
)

var (
	configOnce  sync.Once
	configValue *Config
)

// LLMConfig selects the chat-completion provider and the fixed model identifier.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// InsightConfig controls the report schema requested from the model.
type InsightConfig struct {
	SchemaVersion int
	Language      string
}

// ReportCacheConfig bounds the in-memory store behind the download link.
type ReportCacheConfig struct {
	MaxSize    int
	TTLMinutes int
}

// LoggingConfig is the slog/lumberjack setup.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig is the listen address and the externally visible base URL.
type HTTPConfig struct {
	Host      string
	Port      int
	PublicURL string
}

// Config is the whole application configuration.
type Config struct {
	LLM         LLMConfig
	Insight     InsightConfig
	ReportCache ReportCacheConfig
	Logging     LoggingConfig
	HTTP        HTTPConfig
}

// Load reads .env (if present) and the process environment once.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig loads and validates the configuration.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%s environment variable is required", apiKeyEnv(c.LLM.Provider))
	}
	if c.Insight.SchemaVersion != 1 && c.Insight.SchemaVersion != 2 {
		return fmt.Errorf("unsupported insight schema version: %d", c.Insight.SchemaVersion)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.HTTP.Port)
	}
	return nil
}

// Addr is the host:port the HTTP server listens on.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// BaseURL is PublicURL, or the local listen address when no public URL is configured.
func (h HTTPConfig) BaseURL() string {
	if h.PublicURL != "" {
		return strings.TrimRight(h.PublicURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", h.Port)
}

// LogEnvStatus logs the effective configuration with secrets masked.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}
	logger.Debug(
		"env_status",
		"env_file", fileExists(".env"),
		"provider", cfg.LLM.Provider,
		"api_key", maskSecret(cfg.LLM.APIKey),
		"model", cfg.LLM.Model,
		"base_url", cfg.LLM.BaseURL,
		"schema_version", cfg.Insight.SchemaVersion,
		"language", cfg.Insight.Language,
		"report_cache_size", cfg.ReportCache.MaxSize,
	)
}

func buildConfig() *Config {
	provider := strings.ToLower(getEnvString("LLM_PROVIDER", ProviderOpenAI))
	return &Config{
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   getEnvString(apiKeyEnv(provider), ""),
			Model:    getEnvString("LLM_MODEL", defaultModel(provider)),
			BaseURL:  getEnvString("LLM_BASE_URL", ""),
		},
		Insight: InsightConfig{
			SchemaVersion: getEnvInt("INSIGHT_SCHEMA_VERSION", 2),
			Language:      getEnvString("INSIGHT_LANGUAGE", "English"),
		},
		ReportCache: ReportCacheConfig{
			MaxSize:    max(1, getEnvInt("REPORT_CACHE_SIZE", 256)),
			TTLMinutes: max(1, getEnvInt("REPORT_CACHE_TTL_MINUTES", 30)),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:      getEnvString("HOST", "0.0.0.0"),
			Port:      getEnvInt("PORT", 8080),
			PublicURL: getEnvString("PUBLIC_URL", ""),
		},
	}
}

func apiKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return defaultGeminiModel
	}
	return defaultOpenAIModel
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
