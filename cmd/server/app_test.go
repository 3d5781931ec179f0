package main

import (
	"context"
	"errors"
	"testing"

	"github.com/BerylCAtieno/persona-insights/internal/llm"
	"github.com/BerylCAtieno/persona-insights/internal/logging"
)

type closeCounter struct {
	closes int
	err    error
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.err
}

type stubProvider struct {
	closeCounter
}

func (*stubProvider) Name() string { return "stub" }

func (*stubProvider) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{}, nil
}

func (*stubProvider) Ping(context.Context) error { return nil }

func TestAppCloseReleasesProviderAndLogFile(t *testing.T) {
	provider := &stubProvider{closeCounter{err: errors.New("already closed")}}
	logFile := &closeCounter{}
	app := &App{Logger: logging.Discard(), provider: provider, logFile: logFile}

	app.Close()
	app.Close()

	if provider.closes != 1 {
		t.Fatalf("expected provider closed once, got %d", provider.closes)
	}
	if logFile.closes != 1 {
		t.Fatalf("expected log file closed once, got %d", logFile.closes)
	}
}
