package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/persona-insights/internal/middleware"
)

const readinessTimeout = 5 * time.Second

// Pinger checks that the language model provider accepts the configured credentials.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	provider Pinger
	logger   *slog.Logger
}

func NewHealthHandler(provider Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{provider: provider, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Live)
	r.GET("/health/ready", h.Ready)
}

// Live always answers OK while the process serves requests.
func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready pings the provider. Failure details go to the log only; they can carry the provider's
// response body.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.provider.Ping(ctx); err != nil {
		h.logger.Warn("readiness_check_failed",
			"request_id", middleware.GetRequestID(c),
			"provider", h.provider.Name(),
			"err", err,
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"provider": h.provider.Name(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": h.provider.Name()})
}
