package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/persona-insights/internal/llm"
)

type stubPinger struct {
	err error
}

func (stubPinger) Name() string { return "stub" }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		path   string
		pinger Pinger
		status int
		body   string
	}{
		{name: "live", path: "/health", status: http.StatusOK, body: "OK"},
		{name: "ready", path: "/health/ready", pinger: stubPinger{}, status: http.StatusOK, body: `"provider":"stub"`},
		{name: "not ready", path: "/health/ready", pinger: stubPinger{err: errors.New("401")}, status: http.StatusServiceUnavailable, body: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			NewHealthHandler(tt.pinger, nil).RegisterRoutes(router)

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if !strings.Contains(resp.Body.String(), tt.body) {
				t.Fatalf("expected %q in %s", tt.body, resp.Body.String())
			}
		})
	}
}

func TestReadyKeepsProviderDetailInLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	pinger := stubPinger{err: &llm.StatusError{Provider: "stub", StatusCode: http.StatusForbidden, Body: "key sk-secret rejected"}}

	router := gin.New()
	NewHealthHandler(pinger, logger).RegisterRoutes(router)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"provider":"stub","status":"unavailable"}` {
		t.Fatalf("unexpected body %s", body)
	}
	if !strings.Contains(buf.String(), "readiness_check_failed") || !strings.Contains(buf.String(), "sk-secret") {
		t.Fatalf("expected failure detail in log, got %s", buf.String())
	}
}
