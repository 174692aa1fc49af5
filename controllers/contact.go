package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
)

type ContactInput struct {
	Name    *string `json:"name" form:"name" validate:"required,notblank,max=100"`
	Email   *string `json:"email" form:"email" validate:"required,notblank,email,max=100"`
	Phone   *string `json:"phone" form:"phone" validate:"required,notblank,max=15"`
	Message *string `json:"message" form:"message" validate:"required,notblank"`
}

func NewContactController(d Deps) *Resource[models.Contact, ContactInput] {
	return &Resource[models.Contact, ContactInput]{
		Label:            "Contact",
		Plural:           "Contacts",
		Repo:             repository.New[models.Contact](d.DB),
		ConflictStatus:   fiber.StatusBadRequest,
		DuplicateMessage: "A contact with the same name, email, phone, and message already exists.",
		UniqueMessage:    "A contact with this email already exists.",
		NaturalKey: func(in *ContactInput) map[string]any {
			return map[string]any{
				"name":    *in.Name,
				"email":   *in.Email,
				"phone":   *in.Phone,
				"message": *in.Message,
			}
		},
		New: func(in *ContactInput) *models.Contact {
			return &models.Contact{
				Name:    *in.Name,
				Email:   *in.Email,
				Phone:   *in.Phone,
				Message: *in.Message,
			}
		},
		Patch: func(ct *models.Contact, in *ContactInput) {
			setString(&ct.Name, in.Name)
			setString(&ct.Email, in.Email)
			setString(&ct.Phone, in.Phone)
			setString(&ct.Message, in.Message)
		},
		ID: func(ct *models.Contact) uint { return ct.ID },
	}
}
