package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
)

type TestimonialInput struct {
	Name    *string `json:"name" form:"name" validate:"required,notblank,max=255"`
	Message *string `json:"message" form:"message" validate:"required,notblank"`
}

func NewTestimonialController(d Deps) *Resource[models.Testimonial, TestimonialInput] {
	return &Resource[models.Testimonial, TestimonialInput]{
		Label:            "Testimonial",
		Plural:           "Testimonials",
		Repo:             repository.New[models.Testimonial](d.DB),
		Files:            d.Files,
		MaxUploadSize:    d.MaxUploadSize,
		ConflictStatus:   fiber.StatusBadRequest,
		DuplicateMessage: "A testimonial with the same name and message already exists.",
		NaturalKey: func(in *TestimonialInput) map[string]any {
			return map[string]any{"name": *in.Name, "message": *in.Message}
		},
		New: func(in *TestimonialInput) *models.Testimonial {
			return &models.Testimonial{Name: *in.Name, Message: *in.Message}
		},
		Patch: func(t *models.Testimonial, in *TestimonialInput) {
			setString(&t.Name, in.Name)
			setString(&t.Message, in.Message)
		},
		Image: func(t *models.Testimonial) **string { return &t.Image },
		ID:    func(t *models.Testimonial) uint { return t.ID },
	}
}
