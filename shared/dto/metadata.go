package dto

import (
	"time"

	"bookly/shared/constant"
	"bookly/shared/model"
)

// Metadata is the audit block embedded in every response. Instants are rendered in UTC,
// like appointment start and end times, and a zero instant renders as "".
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = formatInstant(model.CreatedAt)
	m.ModifiedAt = formatInstant(model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return t.UTC().Format(constant.DateFormat)
}
