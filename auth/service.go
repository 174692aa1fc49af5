// Package auth implements registration, login and the OTP password reset flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

const (
	msgEmailRegistered    = "Email is already registered."
	msgInvalidCredentials = "Invalid email or password."
	msgInactiveAccount    = "Account is not active. Please contact support."
	msgInvalidOTP         = "Invalid OTP."
	msgOTPExpired         = "OTP has expired."
	msgResetExpired       = "Token has expired, please try the reset process again."
	msgInvalidToken       = "Invalid token."
)

type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,alpha,min=4"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,password,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type ChangePasswordInput struct {
	Token           string `json:"token" form:"token"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service struct {
	users        repository.UserRepository
	otps         repository.OTPRepository
	tokens       *TokenService
	mailer       utils.Mailer
	otpTTL       time.Duration
	autoActivate bool
	now          func() time.Time
}

func NewService(users repository.UserRepository, otps repository.OTPRepository, tokens *TokenService, mailer utils.Mailer, cfg *config.Config) *Service {
	return &Service{
		users:        users,
		otps:         otps,
		tokens:       tokens,
		mailer:       mailer,
		otpTTL:       cfg.OTPExpiry,
		autoActivate: cfg.AutoActivateUsers,
		now:          time.Now,
	}
}

// WithClock replaces the time source of the service and its tokens.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	s.tokens.now = now
	return s
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := utils.Validate(&in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, utils.ConflictError(fiber.StatusBadRequest, msgEmailRegistered)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.InternalError(err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, utils.InternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: models.ActiveNo,
	}
	if s.autoActivate {
		user.IsActive = models.ActiveYes
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ConflictError(fiber.StatusBadRequest, msgEmailRegistered)
		}
		return nil, utils.InternalError(err)
	}
	return user, nil
}

// Login checks credentials and persists the new refresh token on the user,
// replacing any previous one.
func (s *Service) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	if err := utils.Validate(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.AuthError(msgInvalidCredentials)
		}
		return nil, utils.InternalError(err)
	}
	if !user.Active() {
		return nil, utils.ForbiddenError(msgInactiveAccount)
	}
	if !CheckPassword(user.Password, in.Password) {
		return nil, utils.AuthError(msgInvalidCredentials)
	}

	return s.issue(ctx, user)
}

// Refresh exchanges the user's current refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, utils.ValidationError("Refresh token is required.")
	}

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, utils.ExpiredError(fiber.StatusUnauthorized, "Refresh token has expired.")
		}
		return nil, utils.AuthError(msgInvalidToken)
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.AuthError(msgInvalidToken)
		}
		return nil, utils.InternalError(err)
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, utils.AuthError(msgInvalidToken)
	}
	if !user.Active() {
		return nil, utils.ForbiddenError(msgInactiveAccount)
	}

	return s.issue(ctx, user)
}

func (s *Service) Logout(ctx context.Context, userID uint) error {
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		return utils.InternalError(err)
	}
	return nil
}

func (s *Service) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, utils.InternalError(err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, utils.InternalError(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RequestReset issues a new OTP for an active user and mails it.
// Earlier codes stay valid until they expire.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return utils.ValidationError("Email is required.")
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("User with this email does not exist.")
		}
		return utils.InternalError(err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return utils.InternalError(err)
	}
	otp := &models.OTP{
		UserID:         user.ID,
		OTPCode:        code,
		ExpirationTime: s.now().Add(s.otpTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return utils.InternalError(err)
	}

	body := utils.OTPEmailBody(code, int(s.otpTTL/time.Minute))
	if err := s.mailer.Send(ctx, user.Email, "Password Reset OTP", body); err != nil {
		return utils.InternalError(fmt.Errorf("failed to deliver otp: %w", err))
	}
	log.Printf("Password reset OTP issued for user %d", user.ID)
	return nil
}

// ValidateOTP checks the most recent OTP carrying code and returns a reset token.
// The OTP is left in place and may be presented again until it expires.
func (s *Service) ValidateOTP(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", utils.ValidationError("OTP is required.")
	}

	otp, err := s.otps.FindLatestByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NotFoundError(msgInvalidOTP)
		}
		return "", utils.InternalError(err)
	}
	if otp.Expired(s.now()) {
		return "", utils.ExpiredError(fiber.StatusBadRequest, msgOTPExpired)
	}

	user, err := s.users.FindByID(ctx, otp.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NotFoundError("User not found.")
		}
		return "", utils.InternalError(err)
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", utils.InternalError(err)
	}
	return token, nil
}

// ChangePassword sets a new password for the user bound to a reset token.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.Token == "" {
		return utils.AuthError(msgInvalidToken)
	}
	claims, err := s.tokens.ParseReset(in.Token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return utils.ExpiredError(fiber.StatusUnauthorized, msgResetExpired)
		}
		return utils.AuthError(msgInvalidToken)
	}

	if in.NewPassword == "" || in.ConfirmPassword == "" {
		return utils.ValidationError("Both fields are required.")
	}
	if in.NewPassword != in.ConfirmPassword {
		return utils.ValidationError("Passwords do not match.")
	}
	if len(in.NewPassword) < 8 || !utils.StrongPassword(in.NewPassword) {
		return utils.ValidationError("Password must be at least 8 characters long, contain at least one uppercase letter, one digit, and one special character.")
	}

	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("User not found.")
		}
		return utils.InternalError(err)
	}

	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return utils.InternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		return utils.InternalError(err)
	}
	return nil
}
