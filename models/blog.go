package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blog struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Title           string         `json:"title" gorm:"size:255;not null"`
	Content         string         `json:"content" gorm:"type:text;not null"`
	Image           *string        `json:"image" gorm:"size:255"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	User            *User          `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category        string         `json:"category" gorm:"size:100;not null"`
	Slug            string         `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	MetaDescription *string        `json:"meta_description" gorm:"type:text"`
	Date            datatypes.Date `json:"date" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Blog) TableName() string {
	return "blogs"
}

// BeforeSave keeps the slug in step with the title.
func (b *Blog) BeforeSave(tx *gorm.DB) error {
	b.Slug = Slugify(b.Title)
	return nil
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if time.Time(b.Date).IsZero() {
		b.Date = Today()
	}
	return nil
}
