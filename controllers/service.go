package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
)

type ServiceInput struct {
	Title       *string `json:"title" form:"title" validate:"required,notblank,max=150"`
	Description *string `json:"description" form:"description" validate:"required,notblank"`
}

func NewServiceController(d Deps) *Resource[models.Service, ServiceInput] {
	return &Resource[models.Service, ServiceInput]{
		Label:            "Service",
		Plural:           "Services",
		Repo:             repository.New[models.Service](d.DB),
		Files:            d.Files,
		MaxUploadSize:    d.MaxUploadSize,
		ConflictStatus:   fiber.StatusConflict,
		DuplicateMessage: "A service with this title already exists.",
		NaturalKey: func(in *ServiceInput) map[string]any {
			return map[string]any{"title": *in.Title}
		},
		New: func(in *ServiceInput) *models.Service {
			return &models.Service{
				Title:       *in.Title,
				Description: *in.Description,
			}
		},
		Patch: func(s *models.Service, in *ServiceInput) {
			setString(&s.Title, in.Title)
			setString(&s.Description, in.Description)
		},
		Image: func(s *models.Service) **string { return &s.Image },
		ID:    func(s *models.Service) uint { return s.ID },
	}
}
