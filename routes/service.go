package routes

import "github.com/gofiber/fiber/v2"

// SetupServiceRoutes configures services and their detail pages.
func SetupServiceRoutes(api fiber.Router, h *Handlers) {
	mountCRUD(api.Group("/services"), h.Services, h.Protected, false)
	mountCRUD(api.Group("/service-details"), h.ServiceDetails, h.Protected, false)
}
