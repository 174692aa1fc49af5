package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

// RequireRole checks the caller's current role in the database, so a role
// change takes effect before the access token expires. Use after Protected.
func RequireRole(users repository.UserRepository, roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == 0 {
			return utils.AuthError("Invalid or expired token.")
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.AuthError("User not found.")
			}
			return utils.InternalError(err)
		}
		if !user.Active() {
			return utils.ForbiddenError("Account is not active. Please contact support.")
		}
		if user.Role != roleName {
			return utils.ForbiddenError("You don't have the required role to perform this action.")
		}

		return c.Next()
	}
}
