package routes

import "github.com/gofiber/fiber/v2"

func SetupTestimonialRoutes(api fiber.Router, h *Handlers) {
	mountCRUD(api.Group("/testimonials"), h.Testimonials, h.Protected, false)
}
