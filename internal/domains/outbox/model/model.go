package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "outbox_events"
	EntityName = "outbox_event"

	FieldID          = "id"
	FieldAggregateID = "aggregate_id"
	FieldEventType   = "event_type"
	FieldPublishedAt = "published_at"
	FieldAttempts    = "attempts"
	FieldLastError   = "last_error"
	FieldCreatedAt   = "created_at"
)

type EventType string

const (
	EventAppointmentConfirmed EventType = "appointment.confirmed"
	EventAppointmentCancelled EventType = "appointment.cancelled"
)

// Event is a row of the transactional outbox. It is written in the same transaction as
// the state change it announces and published afterwards by the relay.
type Event struct {
	ID          string         `db:"id"`
	AggregateID string         `db:"aggregate_id"`
	BusinessID  string         `db:"business_id"`
	EventType   EventType      `db:"event_type"`
	Payload     types.JSONText `db:"payload"`
	Attempts    int            `db:"attempts"`
	PublishedAt *time.Time     `db:"published_at"`
	LastError   string         `db:"last_error"`
	CreatedAt   time.Time      `db:"created_at"`
}

// AppointmentPayload is the body of every appointment.* event.
type AppointmentPayload struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	AppointmentID string    `json:"appointment_id"`
	BusinessID    string    `json:"business_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewAppointmentEvent(eventType EventType, appointmentID, businessID, status string, now time.Time) (Event, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(AppointmentPayload{
		EventID:       id,
		EventType:     eventType,
		AppointmentID: appointmentID,
		BusinessID:    businessID,
		Status:        status,
		OccurredAt:    now,
	})
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return Event{
		ID:          id,
		AggregateID: appointmentID,
		BusinessID:  businessID,
		EventType:   eventType,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}

func (e Event) AppointmentPayload() (AppointmentPayload, error) {
	var payload AppointmentPayload

	if err := e.Payload.Unmarshal(&payload); err != nil {
		return payload, fmt.Errorf("failed to decode event payload: %w", err)
	}

	return payload, nil
}
