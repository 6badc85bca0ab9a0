package dto

import (
	"bookly/internal/domains/catalog/model"
	"bookly/shared"
	gDto "bookly/shared/dto"
	gModel "bookly/shared/model"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name            string  `json:"name"             validate:"required,min=2,max=100"`
	Description     string  `json:"description"      validate:"max=1000"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0,lte=720"`
	Price           float64 `json:"price"            validate:"gte=0"`
	Active          *bool   `json:"active"`
}

func (r CreateServiceRequest) ToModel(businessID, actor string) model.Service {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.Service{
		ID:              uuid.NewString(),
		BusinessID:      businessID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Active:          active,
		Metadata:        gModel.NewMetadata(actor),
	}
}

type UpdateServiceRequest struct {
	Name            *string  `db:"name"             json:"name"             validate:"omitempty,min=2,max=100"`
	Description     *string  `db:"description"      json:"description"      validate:"omitempty,max=1000"`
	DurationMinutes *int     `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,gt=0,lte=720"`
	Price           *float64 `db:"price"            json:"price"            validate:"omitempty,gte=0"`
	Active          *bool    `db:"active"           json:"active"`
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.DurationMinutes = m.DurationMinutes
	r.Price = m.Price
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, total, limit int) {
	r.Services = make([]ServiceResponse, len(models))
	for i, m := range models {
		r.Services[i].FromModel(m)
	}

	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}

// PublicServiceResponse omits audit fields.
type PublicServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

func (r *PublicServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.DurationMinutes = m.DurationMinutes
	r.Price = m.Price
}
