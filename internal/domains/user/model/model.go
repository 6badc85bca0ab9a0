package model

import (
	"time"

	"bookly/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldBusinessID  = "business_id"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldFullName    = "full_name"
	FieldLastLoginAt = "last_login_at"
	FieldActive      = "active"
)

// User is a dashboard account. Every user belongs to exactly one business.
type User struct {
	ID          string     `db:"id"`
	BusinessID  string     `db:"business_id"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Role        string     `db:"role"`
	FullName    string     `db:"full_name"`
	LastLoginAt *time.Time `db:"last_login_at"`
	Active      bool       `db:"active"`
	model.Metadata
}
