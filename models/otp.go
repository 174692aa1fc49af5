package models

import "time"

// OTP is a one-time password reset code. Several may be outstanding per user.
type OTP struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	OTPCode        string    `json:"otp_code" gorm:"column:otp_code;size:10;not null;index"`
	ExpirationTime time.Time `json:"expiration_time" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (OTP) TableName() string {
	return "otp"
}

func (o *OTP) Expired(now time.Time) bool {
	return o.ExpirationTime.Before(now)
}
