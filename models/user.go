package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"

	ActiveYes = "Yes"
	ActiveNo  = "No"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:20;not null"`
	RefreshToken *string   `json:"-" gorm:"type:text"`
	IsActive     string    `json:"is_active" gorm:"size:3;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	if u.IsActive == "" {
		u.IsActive = ActiveNo
	}
	return nil
}

// Active reports whether the account may sign in.
func (u *User) Active() bool {
	return u.IsActive == ActiveYes
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

func ValidActiveFlag(flag string) bool {
	return flag == ActiveYes || flag == ActiveNo
}
