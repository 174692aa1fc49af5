package routes

import "github.com/gofiber/fiber/v2"

// SetupContactRoutes accepts public contact requests; reading them needs a token.
func SetupContactRoutes(api fiber.Router, h *Handlers) {
	contacts := api.Group("/contacts")
	contacts.Post("/", h.Contacts.Create)
	contacts.Get("/", h.Protected, h.Contacts.List)
	contacts.Get("/:id", h.Protected, h.Contacts.Get)
	contacts.Put("/:id", h.Protected, h.Contacts.Update)
	contacts.Delete("/:id", h.Protected, h.Contacts.Delete)
}
