package dto

import (
	"bookly/internal/domains/availability"
	"bookly/internal/domains/professional/model"
	"bookly/shared"
	gDto "bookly/shared/dto"
	gModel "bookly/shared/model"

	"github.com/google/uuid"
)

type CreateProfessionalRequest struct {
	Name       string   `json:"name"        validate:"required,min=2,max=100"`
	Email      string   `json:"email"       validate:"omitempty,email"`
	Phone      string   `json:"phone"       validate:"omitempty,max=30"`
	Bio        string   `json:"bio"         validate:"max=1000"`
	ServiceIDs []string `json:"service_ids" validate:"omitempty,dive,uuid"`
}

func (r CreateProfessionalRequest) ToModel(businessID, actor string) model.Professional {
	return model.Professional{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Bio:        r.Bio,
		Active:     true,
		Metadata:   gModel.NewMetadata(actor),
	}
}

type UpdateProfessionalRequest struct {
	Name   *string `db:"name"   json:"name"   validate:"omitempty,min=2,max=100"`
	Email  *string `db:"email"  json:"email"  validate:"omitempty,email"`
	Phone  *string `db:"phone"  json:"phone"  validate:"omitempty,max=30"`
	Bio    *string `db:"bio"    json:"bio"    validate:"omitempty,max=1000"`
	Active *bool   `db:"active" json:"active"`
}

type AssignServicesRequest struct {
	ServiceIDs []string `json:"service_ids" validate:"dive,uuid"`
}

type UpdateWorkingHoursRequest struct {
	WorkingHours availability.WorkingHours `json:"working_hours"`
}

type ProfessionalResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Email        string                     `json:"email"`
	Phone        string                     `json:"phone"`
	Bio          string                     `json:"bio"`
	Active       bool                       `json:"active"`
	WorkingHours *availability.WorkingHours `json:"working_hours,omitempty"`
	ServiceIDs   []string                   `json:"service_ids,omitempty"`
	gDto.Metadata
}

func (r *ProfessionalResponse) FromModel(m model.Professional) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Phone = m.Phone
	r.Bio = m.Bio
	r.Active = m.Active

	if !m.WorkingHours.IsZero() {
		hours := m.WorkingHours
		r.WorkingHours = &hours
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetProfessionalsResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
	TotalPage     int                    `json:"total_page"`
}

func (r *GetProfessionalsResponse) FromModels(models []model.Professional, total, limit int) {
	r.Professionals = make([]ProfessionalResponse, len(models))
	for i, m := range models {
		r.Professionals[i].FromModel(m)
	}

	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}

type PublicProfessionalResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (r *PublicProfessionalResponse) FromModel(m model.Professional) {
	r.ID = m.ID
	r.Name = m.Name
	r.Bio = m.Bio
}
