package ratelimit

import (
	"repair-tracker/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New returns a Fiber middleware limiting requests per client IP.
// Limiter errors let the request through.
func New(l Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		allowed, err := l.Allow(c.UserContext(), ip)
		if err != nil {
			logger.Get().Warn("Rate limiter unavailable", zap.String("ip", ip), zap.Error(err))
			return c.Next()
		}

		if !allowed {
			rayID, _ := c.Locals("requestid").(string)
			logger.Get().Info("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Path()),
				zap.String("ray_id", rayID),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
				"ray_id":  rayID,
			})
		}

		return c.Next()
	}
}
