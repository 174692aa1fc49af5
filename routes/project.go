package routes

import "github.com/gofiber/fiber/v2"

func SetupProjectRoutes(api fiber.Router, h *Handlers) {
	mountCRUD(api.Group("/projects"), h.Projects, h.Protected, false)
}
