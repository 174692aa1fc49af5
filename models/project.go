package models

import "time"

type Project struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	Category  string    `json:"category" gorm:"size:100;not null"`
	Image     *string   `json:"image" gorm:"size:255"`
	Link      *string   `json:"link" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
