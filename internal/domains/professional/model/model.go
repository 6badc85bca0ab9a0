package model

import (
	"bookly/internal/domains/availability"
	"bookly/shared/model"
)

const (
	TableName  = "professionals"
	EntityName = "professional"

	FieldID           = "id"
	FieldBusinessID   = "business_id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldBio          = "bio"
	FieldActive       = "active"
	FieldWorkingHours = "working_hours"
)

const (
	ServiceTableName  = "professional_services"
	ServiceEntityName = "professional_service"

	FieldProfessionalID = "professional_id"
	FieldServiceID      = "service_id"
)

type Professional struct {
	ID           string                    `db:"id"`
	BusinessID   string                    `db:"business_id"`
	Name         string                    `db:"name"`
	Email        string                    `db:"email"`
	Phone        string                    `db:"phone"`
	Bio          string                    `db:"bio"`
	Active       bool                      `db:"active"`
	WorkingHours availability.WorkingHours `db:"working_hours"`
	model.Metadata
}

// HoursOr returns the professional's own schedule, or fallback when none is set.
func (p Professional) HoursOr(fallback availability.WorkingHours) availability.WorkingHours {
	if p.WorkingHours.IsZero() {
		return fallback
	}

	return p.WorkingHours
}

// ProfessionalService links a professional to a service they perform.
type ProfessionalService struct {
	ProfessionalID string `db:"professional_id"`
	ServiceID      string `db:"service_id"`
	BusinessID     string `db:"business_id"`
}
