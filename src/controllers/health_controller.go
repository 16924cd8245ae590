package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	env  string
	ping func(ctx context.Context) error
}

// NewHealthController takes the database ping; nil skips the check.
func NewHealthController(env string, ping func(ctx context.Context) error) *HealthController {
	return &HealthController{env: env, ping: ping}
}

// Health handles GET /health.
func (h *HealthController) Health(c *fiber.Ctx) error {
	status, code := "OK", fiber.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code = "DEGRADED", fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status":      status,
		"environment": h.env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
