package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// PingContext calls f
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	version  string
	started  time.Time
	checks   map[string]Pinger
	deadline time.Duration
}

// NewHealthHandler creates a HealthHandler. checks are probed by /ready.
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		version:  version,
		started:  time.Now(),
		checks:   checks,
		deadline: 2 * time.Second,
	}
}

// RegisterRoutes mounts /health and /ready on the root router
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health reports the process is up
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", gin.H{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}))
}

// Ready pings every dependency and answers 503 if any is down
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.deadline)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.PingContext(ctx); err != nil {
			logger.L(ctx).Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	if status != http.StatusOK {
		resp := dto.NewErrorResponse("SERVICE_UNAVAILABLE", "not ready", middleware.GetRequestID(c))
		resp.Data = results
		c.JSON(status, resp)
		return
	}
	c.JSON(status, dto.NewSuccessResponse("ready", results))
}
