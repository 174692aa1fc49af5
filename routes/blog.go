package routes

import "github.com/gofiber/fiber/v2"

func SetupBlogRoutes(api fiber.Router, h *Handlers) {
	blogs := api.Group("/blogs")
	blogs.Post("/add-blog", h.Protected, h.Blogs.Create)
	blogs.Get("/", h.Blogs.List)
	blogs.Get("/:id", h.Blogs.Get)
	blogs.Put("/:id", h.Protected, h.Blogs.Update)
	blogs.Delete("/:id", h.Protected, h.Blogs.Delete)
}
