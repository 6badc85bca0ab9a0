package dto

import (
	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/availability"
	"bookly/shared"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/timezone"
)

// CustomerInput identifies a walk-in customer by phone; a known phone is reused.
type CustomerInput struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,min=6,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateAppointmentRequest struct {
	ServiceID      string         `json:"service_id"      validate:"required,uuid"`
	ProfessionalID string         `json:"professional_id" validate:"required,uuid"`
	Date           string         `json:"date"            validate:"required,day"`
	Time           string         `json:"time"            validate:"required,clock"`
	CustomerID     string         `json:"customer_id"     validate:"required_without=Customer,omitempty,uuid"`
	Customer       *CustomerInput `json:"customer"        validate:"required_without=CustomerID,omitempty"`
	Notes          string         `json:"notes"           validate:"max=1000"`
}

// BookAppointmentRequest is the public booking body. Anonymous callers always identify
// the customer by phone and cannot reference an existing customer row.
type BookAppointmentRequest struct {
	ServiceID      string        `json:"service_id"      validate:"required,uuid"`
	ProfessionalID string        `json:"professional_id" validate:"required,uuid"`
	Date           string        `json:"date"            validate:"required,day"`
	Time           string        `json:"time"            validate:"required,clock"`
	Customer       CustomerInput `json:"customer"        validate:"required"`
	Notes          string        `json:"notes"           validate:"max=1000"`
}

func (r BookAppointmentRequest) ToCreate() CreateAppointmentRequest {
	customer := r.Customer

	return CreateAppointmentRequest{
		ServiceID:      r.ServiceID,
		ProfessionalID: r.ProfessionalID,
		Date:           r.Date,
		Time:           r.Time,
		Customer:       &customer,
		Notes:          r.Notes,
	}
}

type RescheduleAppointmentRequest struct {
	Date           *string `json:"date"            validate:"omitempty,day"`
	Time           *string `json:"time"            validate:"omitempty,clock"`
	ServiceID      *string `json:"service_id"      validate:"omitempty,uuid"`
	ProfessionalID *string `json:"professional_id" validate:"omitempty,uuid"`
	Notes          *string `json:"notes"           validate:"omitempty,max=1000"`
}

func (r RescheduleAppointmentRequest) MovesSlot() bool {
	return r.Date != nil || r.Time != nil || r.ServiceID != nil || r.ProfessionalID != nil
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED NO_SHOW"`
}

type PublicCancelRequest struct {
	Phone string `json:"phone" validate:"required,min=6,max=30"`
}

type SlotQuery struct {
	BusinessID     string
	ServiceID      string `validate:"required,uuid"`
	ProfessionalID string `validate:"required,uuid"`
	Date           string `validate:"required,day"`
}

type SlotsResponse struct {
	Date  string              `json:"date"`
	Slots []availability.Slot `json:"slots"`
}

type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type ServiceSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type ProfessionalSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AppointmentResponse struct {
	ID           string              `json:"id"`
	Date         string              `json:"date"`
	Time         string              `json:"time"`
	StartTime    string              `json:"start_time"`
	EndTime      string              `json:"end_time"`
	Status       model.Status        `json:"status"`
	Notes        string              `json:"notes"`
	Customer     CustomerSummary     `json:"customer"`
	Service      ServiceSummary      `json:"service"`
	Professional ProfessionalSummary `json:"professional"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(m model.AppointmentDetail) {
	loc := m.Location()

	r.ID = m.ID
	r.Date = timezone.FormatDay(m.Date)
	r.Time = timezone.ClockOf(m.StartTime, loc)
	r.StartTime = m.StartTime.UTC().Format(constant.DateFormat)
	r.EndTime = m.EndTime.UTC().Format(constant.DateFormat)
	r.Status = m.Status
	r.Notes = m.Notes
	r.Customer = CustomerSummary{ID: m.CustomerID, Name: m.CustomerName, Phone: m.CustomerPhone, Email: m.CustomerEmail}
	r.Service = ServiceSummary{ID: m.ServiceID, Name: m.ServiceName, DurationMinutes: m.ServiceDurationMinutes, Price: m.ServicePrice}
	r.Professional = ProfessionalSummary{ID: m.ProfessionalID, Name: m.ProfessionalName}
	r.Metadata.FromModel(m.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
	TotalPage    int                   `json:"total_page"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.AppointmentDetail, total, limit int) {
	r.Appointments = make([]AppointmentResponse, len(models))
	for i, m := range models {
		r.Appointments[i].FromModel(m)
	}

	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
