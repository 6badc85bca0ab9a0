package model

import "bookly/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldBusinessID      = "business_id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldDurationMinutes = "duration_minutes"
	FieldPrice           = "price"
	FieldActive          = "active"
)

// Service is a bookable offering of a business, e.g. a haircut.
type Service struct {
	ID              string  `db:"id"`
	BusinessID      string  `db:"business_id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
	Price           float64 `db:"price"`
	Active          bool    `db:"active"`
	model.Metadata
}
