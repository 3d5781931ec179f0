package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrGenerationFailed wraps every transport, status and authentication failure of a provider call.
var ErrGenerationFailed = errors.New("generation failed")

// RoleUser is the chat role of the single prompt message.
const RoleUser = "user"

// Provider is a chat-completion backend.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable with the configured credentials
	Ping(ctx context.Context) error

	Close() error
}

// CompletionRequest is a chat-completion request.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionResponse is the provider reply.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// StatusError is a non-success HTTP status returned by a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// Unauthorized reports whether the provider rejected the credentials.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// NewUserRequest builds a request with the prompt as the only user message.
func NewUserRequest(model string, prompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleUser, Content: prompt},
		},
	}
}
