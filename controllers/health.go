package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

// Health reports whether the database answers a ping.
func Health(database *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		sqlDB, err := database.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(utils.Envelope{
				Status:  utils.StatusError,
				Data:    fiber.Map{"database": "down"},
				Message: "Service unavailable.",
			})
		}
		return utils.Respond(c, fiber.StatusOK, fiber.Map{"database": "up"}, "OK")
	}
}
