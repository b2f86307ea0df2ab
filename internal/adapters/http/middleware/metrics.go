package middleware

import (
	"time"

	"esolve-collections/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request latency by matched route
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
