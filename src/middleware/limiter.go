package middleware

import (
	"time"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// LoginLimiter caps login attempts per client IP. max <= 0 disables it.
func LoginLimiter(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.HandleError(c, fiber.StatusTooManyRequests, constants.MsgTooManyRequests)
		},
	})
}
