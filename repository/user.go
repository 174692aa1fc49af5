package repository

import (
	"context"
	"fmt"

	"github.com/meinhoongagan/portfolio-api/models"
	"gorm.io/gorm"
)

// UserRepository defines the user queries the credential engine needs.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	SetRefreshToken(ctx context.Context, id uint, token *string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type userRepository struct {
	*Repository[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{Repository: New[models.User](db)}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB(ctx).Where("email = ? AND is_active = ?", email, models.ActiveYes).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active user by email %s: %w", email, err)
	}
	return &user, nil
}

// EmailTaken reports whether email belongs to a user other than exceptID.
func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return count > 0, nil
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id uint, token *string) error {
	err := r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("refresh_token", token).Error
	if err != nil {
		return fmt.Errorf("failed to store refresh token for user %d: %w", id, err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	err := r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash).Error
	if err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", id, err)
	}
	return nil
}
