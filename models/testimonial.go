package models

import "time"

type Testimonial struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Image     *string   `json:"image" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
