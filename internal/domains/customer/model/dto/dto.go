package dto

import (
	"bookly/internal/domains/customer/model"
	"bookly/shared"
	gDto "bookly/shared/dto"
	gModel "bookly/shared/model"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,min=6,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
	Notes string `json:"notes" validate:"max=1000"`
}

func (r CreateCustomerRequest) ToModel(businessID, actor string) model.Customer {
	return model.Customer{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       r.Name,
		Phone:      model.NormalizePhone(r.Phone),
		Email:      r.Email,
		Notes:      r.Notes,
		Metadata:   gModel.NewMetadata(actor),
	}
}

type UpdateCustomerRequest struct {
	Name  *string `db:"name"  json:"name"  validate:"omitempty,min=2,max=100"`
	Phone *string `db:"phone" json:"phone" validate:"omitempty,min=6,max=30"`
	Email *string `db:"email" json:"email" validate:"omitempty,email"`
	Notes *string `db:"notes" json:"notes" validate:"omitempty,max=1000"`
}

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(m model.Customer) {
	r.ID = m.ID
	r.Name = m.Name
	r.Phone = m.Phone
	r.Email = m.Email
	r.Notes = m.Notes
	r.Metadata.FromModel(m.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
	TotalPage int                `json:"total_page"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, total, limit int) {
	r.Customers = make([]CustomerResponse, len(models))
	for i, m := range models {
		r.Customers[i].FromModel(m)
	}

	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
