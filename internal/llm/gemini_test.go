package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

func newTestGemini(t *testing.T, status int, body string) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "generateContent") {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	provider, err := NewGeminiProvider(context.Background(), "g-key", "gemini-test",
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

func TestGeminiCompleteConcatenatesTextParts(t *testing.T) {
	provider := newTestGemini(t, http.StatusOK, `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "{\"demographic\":"}, {"text": " \"x\"}"}]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 4, "totalTokenCount": 16}
	}`)

	resp, err := provider.Complete(context.Background(), NewUserRequest("", "the prompt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != `{"demographic": "x"}` {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if resp.Model != "gemini-test" {
		t.Fatalf("unexpected model %q", resp.Model)
	}
	if resp.Usage != (Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16}) {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
}

func TestGeminiCompleteRejectedKey(t *testing.T) {
	provider := newTestGemini(t, http.StatusForbidden,
		`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`)

	_, err := provider.Complete(context.Background(), NewUserRequest("", "p"))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if !statusErr.Unauthorized() || statusErr.Provider != "gemini" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}

	_, err = NewClient(provider, "gemini-test", nil).RequestInsights(context.Background(), "p")
	if !errors.Is(err, ErrGenerationFailed) || !errors.As(err, &statusErr) {
		t.Fatalf("expected wrapped generation failure, got %v", err)
	}
}

func TestGeminiCompleteNoCandidates(t *testing.T) {
	provider := newTestGemini(t, http.StatusOK, `{"candidates": []}`)

	resp, err := provider.Complete(context.Background(), NewUserRequest("", "p"))
	if err == nil {
		t.Fatalf("expected error, got %+v", resp)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("empty reply is not a status error: %v", err)
	}
}
