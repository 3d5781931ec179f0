package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Client issues the single insight request per user action against a Provider.
type Client struct {
	provider Provider
	model    string
	logger   *slog.Logger
}

// NewClient binds a provider to the fixed model identifier.
func NewClient(provider Provider, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// RequestInsights sends the prompt and returns the trimmed reply text.
// Failures are wrapped with ErrGenerationFailed; nothing is retried.
func (c *Client) RequestInsights(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.provider.Complete(ctx, NewUserRequest(c.model, prompt))
	if err != nil {
		c.logger.Warn("insight_request_failed",
			"provider", c.provider.Name(),
			"model", c.model,
			"latency", time.Since(start),
			"err", err,
		)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c.logger.Info("insight_request_completed",
		"provider", c.provider.Name(),
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"latency", time.Since(start),
	)
	return strings.TrimSpace(resp.Content), nil
}
