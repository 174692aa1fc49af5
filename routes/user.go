package routes

import "github.com/gofiber/fiber/v2"

// SetupUserRoutes configures accounts and authentication.
func SetupUserRoutes(api fiber.Router, h *Handlers) {
	users := api.Group("/users")

	// Public routes
	users.Post("/add-user", h.Auth.Register)
	users.Post("/login", h.Throttle, h.Auth.Login)
	users.Post("/refresh-token", h.Auth.RefreshToken)
	users.Post("/reset-password", h.Throttle, h.Auth.ResetPassword)
	users.Post("/validate-otp", h.Throttle, h.Auth.ValidateOTP)
	users.Post("/change-password", h.Auth.ChangePassword)

	// Protected routes
	users.Post("/logout", h.Protected, h.Auth.Logout)
	users.Get("/", h.Protected, h.Users.List)
	users.Get("/get-user/:id", h.Protected, h.Users.Get)
	users.Put("/edit-user/:id", h.Protected, h.SuperAdmin, h.Users.Update)
	users.Delete("/delete/:id", h.Protected, h.SuperAdmin, h.Users.Delete)
	users.Delete("/:id", h.Protected, h.SuperAdmin, h.Users.Delete)
}
