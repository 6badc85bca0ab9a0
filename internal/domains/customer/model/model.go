package model

import (
	"strings"

	"bookly/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldNotes      = "notes"

	ConstraintPhoneUnique = "customers_business_id_phone_key"
)

type Customer struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Notes      string `db:"notes"`
	model.Metadata
}

// NormalizePhone strips formatting so "+55 (11) 9999-0000" and "+551199990000" dedup.
func NormalizePhone(phone string) string {
	var b strings.Builder

	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}

	return b.String()
}
