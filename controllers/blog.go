package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/middleware"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

type BlogInput struct {
	Title           *string `json:"title" form:"title" validate:"required,notblank,max=255"`
	Content         *string `json:"content" form:"content" validate:"required,notblank"`
	UserID          *uint   `json:"user_id" form:"user_id" validate:"required"`
	Category        *string `json:"category" form:"category" validate:"required,notblank,max=100"`
	MetaDescription *string `json:"meta_description" form:"meta_description"`
}

func NewBlogController(d Deps) *Resource[models.Blog, BlogInput] {
	users := repository.New[models.User](d.DB)

	return &Resource[models.Blog, BlogInput]{
		Label:            "Blog",
		Plural:           "Blogs",
		Repo:             repository.New[models.Blog](d.DB),
		Files:            d.Files,
		MaxUploadSize:    d.MaxUploadSize,
		ConflictStatus:   fiber.StatusConflict,
		NotFoundOnEmpty:  true,
		EmptyMessage:     "No blogs found.",
		DuplicateMessage: "A blog with this title already exists.",
		NaturalKey: func(in *BlogInput) map[string]any {
			return map[string]any{"slug": models.Slugify(*in.Title)}
		},
		// the author defaults to the caller
		Defaults: func(c *fiber.Ctx, in *BlogInput) {
			if in.UserID == nil {
				if id := middleware.UserID(c); id != 0 {
					in.UserID = &id
				}
			}
		},
		Prepare: func(ctx context.Context, in *BlogInput) error {
			if in.UserID == nil {
				return nil
			}
			if _, err := users.FindByID(ctx, *in.UserID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFoundError("User with ID %d not found.", *in.UserID)
				}
				return utils.InternalError(err)
			}
			return nil
		},
		New: func(in *BlogInput) *models.Blog {
			return &models.Blog{
				Title:           *in.Title,
				Content:         *in.Content,
				UserID:          *in.UserID,
				Category:        *in.Category,
				MetaDescription: ptrOrNil(in.MetaDescription),
			}
		},
		Patch: func(b *models.Blog, in *BlogInput) {
			setString(&b.Title, in.Title)
			setString(&b.Content, in.Content)
			setUint(&b.UserID, in.UserID)
			setString(&b.Category, in.Category)
			setNullable(&b.MetaDescription, in.MetaDescription)
		},
		Image: func(b *models.Blog) **string { return &b.Image },
		ID:    func(b *models.Blog) uint { return b.ID },
	}
}
