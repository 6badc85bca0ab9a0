package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"hexcolor":    "{field} must be a hex color",
	"timezone":    "{field} must be an IANA timezone name",
	"clock":       "{field} must be in HH:mm 24-hour format",
	"day":         "{field} must be in YYYY-MM-DD format",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failed rule. Var validation has no field name, so it reads "value".
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	field := first.Field()
	if field == "" {
		field = "value"
	}

	template, ok := messages[first.Tag()]
	if !ok {
		template = fallbackMessage
	}

	return strings.NewReplacer("{field}", field, "{param}", first.Param()).Replace(template)
}
