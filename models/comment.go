package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Comment belongs to a blog and optionally replies to another comment.
// Removing a blog or a parent comment removes its replies at the database level.
type Comment struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	BlogID          uint           `json:"blog_id" gorm:"not null;index"`
	Blog            *Blog          `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ParentCommentID *uint          `json:"parent_comment_id" gorm:"index"`
	ParentComment   *Comment       `json:"-" gorm:"foreignKey:ParentCommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Comment         string         `json:"comment" gorm:"type:text;not null"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Date            datatypes.Date `json:"date" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if time.Time(c.Date).IsZero() {
		c.Date = Today()
	}
	return nil
}
