package model

import (
	"time"

	gDto "bookly/shared/dto"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID            = "id"
	FieldAppointmentID = "appointment_id"
	FieldBusinessID    = "business_id"
	FieldType          = "type"
	FieldStatus        = "status"
	FieldCreatedAt     = "created_at"

	ChannelEmail = "email"
)

type Type string

const (
	TypeConfirmation Type = "confirmation"
	TypeCancellation Type = "cancellation"
	TypeReminder     Type = "reminder"
	TypeReminder2h   Type = "reminder_2h"
)

type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Notification records one delivery attempt, successful or not.
type Notification struct {
	ID            string    `db:"id"`
	AppointmentID string    `db:"appointment_id"`
	BusinessID    string    `db:"business_id"`
	Type          Type      `db:"type"`
	Channel       string    `db:"channel"`
	Provider      string    `db:"provider"`
	Recipient     string    `db:"recipient"`
	Subject       string    `db:"subject"`
	Status        Status    `db:"status"`
	Error         string    `db:"error"`
	CreatedAt     time.Time `db:"created_at"`
}

func ByAppointment(appointmentID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldAppointmentID,
				Value:    appointmentID,
				Operator: gDto.FilterOperatorEq,
				Table:    TableName,
			},
		},
	}
}

// AttemptFilter selects the attempts of one type, with the given outcome, for an appointment.
func AttemptFilter(appointmentID string, kind Type, status Status) gDto.FilterGroup {
	filter := ByAppointment(appointmentID)
	filter.Filters = append(filter.Filters,
		gDto.Filter{
			Field:    FieldType,
			Value:    kind,
			Operator: gDto.FilterOperatorEq,
			Table:    TableName,
		},
		gDto.Filter{
			Field:    FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    TableName,
		},
	)

	return filter
}
