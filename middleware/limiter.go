package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/meinhoongagan/portfolio-api/utils"
)

// RateLimit allows max requests per client IP per window. A nil storage keeps
// counters in process memory.
func RateLimit(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(utils.Envelope{
				Status:  utils.StatusError,
				Message: "Too many requests, please try again later.",
			})
		},
		Storage: storage,
	})
}
