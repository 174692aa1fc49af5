package routes

import "github.com/gofiber/fiber/v2"

// SetupCommentRoutes lets visitors post comments; moderation needs a token.
func SetupCommentRoutes(api fiber.Router, h *Handlers) {
	mountCRUD(api.Group("/comments"), h.Comments, h.Protected, true)
}
