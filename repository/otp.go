package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/meinhoongagan/portfolio-api/models"
	"gorm.io/gorm"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) error
	FindLatestByCode(ctx context.Context, code string) (*models.OTP, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type otpRepository struct {
	*Repository[models.OTP]
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{Repository: New[models.OTP](db)}
}

// FindLatestByCode returns the most recently issued OTP carrying code.
func (r *otpRepository) FindLatestByCode(ctx context.Context, code string) (*models.OTP, error) {
	var otp models.OTP
	err := r.DB(ctx).
		Where("otp_code = ?", code).
		Order("created_at DESC").
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find otp: %w", err)
	}
	return &otp, nil
}

// DeleteExpired removes every OTP whose expiration time is before the given instant.
func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.DB(ctx).Where("expiration_time < ?", before).Delete(&models.OTP{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", result.Error)
	}
	return result.RowsAffected, nil
}
