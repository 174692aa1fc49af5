package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/auth"
	"github.com/meinhoongagan/portfolio-api/middleware"
	"github.com/meinhoongagan/portfolio-api/utils"
)

// AuthController exposes registration, sessions and the password reset flow.
type AuthController struct {
	auth *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{auth: svc}
}

// Register handles user registration
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var in auth.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	user, err := ac.auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusCreated, user, "User created successfully.")
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in auth.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	pair, err := ac.auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, pair, "Login successful.")
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var in struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	pair, err := ac.auth.Refresh(c.UserContext(), in.RefreshToken)
	if err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, pair, "Token refreshed successfully.")
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.auth.Logout(c.UserContext(), middleware.UserID(c)); err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, nil, "Logged out successfully.")
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	if err := ac.auth.RequestReset(c.UserContext(), in.Email); err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, nil, "OTP has been sent to your email.")
}

func (ac *AuthController) ValidateOTP(c *fiber.Ctx) error {
	var in struct {
		OTPCode string `json:"otp_code" form:"otp_code"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	token, err := ac.auth.ValidateOTP(c.UserContext(), in.OTPCode)
	if err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, fiber.Map{"token": token}, "OTP validated successfully.")
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	var in auth.ChangePasswordInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationError("Invalid request body.")
	}

	if err := ac.auth.ChangePassword(c.UserContext(), in); err != nil {
		return err
	}
	return utils.Respond(c, fiber.StatusOK, nil, "Password updated successfully.")
}
