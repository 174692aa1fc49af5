package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are carried by access and refresh tokens.
type Claims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims are carried by the token issued after a valid OTP.
type ResetClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token kinds, each with its own secret.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
	now           func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		resetSecret:   []byte(cfg.ResetTokenSecret),
		accessTTL:     cfg.AccessTokenExpiry,
		refreshTTL:    cfg.RefreshTokenExpiry,
		resetTTL:      cfg.ResetTokenExpiry,
		now:           time.Now,
	}
}

// AccessSecret is the key the request middleware verifies against.
func (s *TokenService) AccessSecret() []byte {
	return s.accessSecret
}

// IssuePair returns a fresh access and refresh token for user.
func (s *TokenService) IssuePair(user *models.User) (string, string, error) {
	access, err := s.sign(s.userClaims(user, s.accessTTL), s.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(s.userClaims(user, s.refreshTTL), s.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *TokenService) IssueReset(userID uint) (string, error) {
	now := s.now()
	claims := ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}
	token, err := s.sign(claims, s.resetSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return token, nil
}

func (s *TokenService) ParseAccess(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, s.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) ParseRefresh(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) ParseReset(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parse(tokenString, claims, s.resetSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) userClaims(user *models.User, ttl time.Duration) Claims {
	now := s.now()
	return Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func (s *TokenService) sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parse verifies signature and expiry, mapping failures to ErrTokenExpired or ErrInvalidToken.
func parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
