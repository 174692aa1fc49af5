package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/portfolio-api/auth"
	"github.com/meinhoongagan/portfolio-api/utils"
)

const (
	localUserID = "userID"
	localRole   = "role"
	localEmail  = "email"
)

// Protected requires a valid access token and stores its claims in Locals.
func Protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    secret,
		SigningMethod: jwtware.HS256,
		Claims:        &auth.Claims{},
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.AuthError("Invalid token.")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.ID == 0 {
				return utils.AuthError("Invalid token.")
			}

			c.Locals(localUserID, claims.ID)
			c.Locals(localRole, claims.Role)
			c.Locals(localEmail, claims.Email)
			return c.Next()
		},
	})
}

// UserID returns the authenticated user's id, or 0 outside Protected.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

func jwtError(c *fiber.Ctx, err error) error {
	log.Printf("JWT rejected on %s %s: %v", c.Method(), c.Path(), err)
	return utils.AuthError("Invalid or expired token.")
}
