package handlers

import (
	"context"
	"sort"
	"time"

	"esolve-collections/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// healthTimeout bounds each dependency check
const healthTimeout = 3 * time.Second

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg    *config.Config
	checks map[string]HealthCheck
}

// NewHealthHandler creates a new health handler. checks maps a dependency
// name to its probe; it may be empty.
func NewHealthHandler(cfg *config.Config, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{cfg: cfg, checks: checks}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "eSolve collections API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and dependency health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	checks := fiber.Map{"api": "healthy"}
	healthy := true

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		err := h.checks[name](ctx)
		cancel()

		if err != nil {
			zap.L().Warn("Health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "unhealthy"
			healthy = false
			continue
		}
		checks[name] = "healthy"
	}

	status, code := "ok", fiber.StatusOK
	if !healthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "eSolve collections API v1.0",
		"version": "1.0.0",
	})
}
