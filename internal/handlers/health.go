package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() error

type HealthHandler struct {
	checks map[string]HealthChecker
}

func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(); err != nil {
			services[name] = "unreachable"
		} else {
			services[name] = "connected"
		}
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "KrouAI Bakong Payment",
		"services": services,
	})
}
