package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
)

type ProjectInput struct {
	Name     *string `json:"name" form:"name" validate:"required,notblank,max=150"`
	Category *string `json:"category" form:"category" validate:"required,notblank,max=100"`
	Link     *string `json:"link" form:"link" validate:"omitempty,max=255"`
}

func NewProjectController(d Deps) *Resource[models.Project, ProjectInput] {
	return &Resource[models.Project, ProjectInput]{
		Label:            "Project",
		Plural:           "Projects",
		Repo:             repository.New[models.Project](d.DB),
		Files:            d.Files,
		MaxUploadSize:    d.MaxUploadSize,
		ConflictStatus:   fiber.StatusConflict,
		DuplicateMessage: "A project with the same name and category already exists.",
		NaturalKey: func(in *ProjectInput) map[string]any {
			return map[string]any{
				"name":     *in.Name,
				"category": *in.Category,
				"link":     nullable(in.Link),
			}
		},
		New: func(in *ProjectInput) *models.Project {
			return &models.Project{
				Name:     *in.Name,
				Category: *in.Category,
				Link:     ptrOrNil(in.Link),
			}
		},
		Patch: func(p *models.Project, in *ProjectInput) {
			setString(&p.Name, in.Name)
			setString(&p.Category, in.Category)
			setNullable(&p.Link, in.Link)
		},
		Image: func(p *models.Project) **string { return &p.Image },
		ID:    func(p *models.Project) uint { return p.ID },
	}
}
