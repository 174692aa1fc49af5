package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/utils"
	"gorm.io/gorm"
)

type ServiceDetailInput struct {
	ServiceID *uint   `json:"service_id" form:"service_id" validate:"required"`
	Detail    *string `json:"detail" form:"detail"`
	Approach  *string `json:"approach" form:"approach"`
}

func NewServiceDetailController(d Deps) *Resource[models.ServiceDetail, ServiceDetailInput] {
	services := repository.New[models.Service](d.DB)

	return &Resource[models.ServiceDetail, ServiceDetailInput]{
		Label:            "Service detail",
		Plural:           "Service details",
		Repo:             repository.New[models.ServiceDetail](d.DB),
		Files:            d.Files,
		MaxUploadSize:    d.MaxUploadSize,
		ConflictStatus:   fiber.StatusConflict,
		NotFoundOnEmpty:  true,
		EmptyMessage:     "No service details found.",
		DuplicateMessage: "Service Details with the same service ID already exists.",
		NaturalKey: func(in *ServiceDetailInput) map[string]any {
			return map[string]any{"service_id": *in.ServiceID}
		},
		Prepare: func(ctx context.Context, in *ServiceDetailInput) error {
			if in.ServiceID == nil {
				return nil
			}
			if _, err := services.FindByID(ctx, *in.ServiceID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFoundError("Service with ID %d not found.", *in.ServiceID)
				}
				return utils.InternalError(err)
			}
			return nil
		},
		New: func(in *ServiceDetailInput) *models.ServiceDetail {
			return &models.ServiceDetail{
				ServiceID: *in.ServiceID,
				Detail:    ptrOrNil(in.Detail),
				Approach:  ptrOrNil(in.Approach),
			}
		},
		Patch: func(sd *models.ServiceDetail, in *ServiceDetailInput) {
			setUint(&sd.ServiceID, in.ServiceID)
			setNullable(&sd.Detail, in.Detail)
			setNullable(&sd.Approach, in.Approach)
		},
		Image: func(sd *models.ServiceDetail) **string { return &sd.Image },
		ID:    func(sd *models.ServiceDetail) uint { return sd.ID },
	}
}
