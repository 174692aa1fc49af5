package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:150;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Image       *string   `json:"image" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	s.Slug = Slugify(s.Title)
	return nil
}

// ServiceDetail carries the long-form page of a service; one per service.
type ServiceDetail struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ServiceID uint      `json:"service_id" gorm:"not null;uniqueIndex"`
	Service   *Service  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Detail    *string   `json:"detail" gorm:"type:text"`
	Approach  *string   `json:"approach" gorm:"type:text"`
	Image     *string   `json:"image" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceDetail) TableName() string {
	return "service_details"
}
