package repository

import (
	"errors"

	"github.com/lib/pq"
)

// IsPqCode reports whether err carries one of the given SQLSTATE codes.
func IsPqCode(err error, codes ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}

	return false
}

// Constraint returns the violated constraint name, if err is a postgres error.
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}
