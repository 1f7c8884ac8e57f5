package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const valueLabel = "value"

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"email":       "{field} must be a valid email address",
	"phone":       "{field} must be a valid phone number",
	"datetime":    "{field} must use the {param} layout",
	"timestamp":   "{field} must be a date and time such as 2026-03-01T14:00:00",
	"bookingcode": "{field} must be a booking code of letters, digits, '-' or '_'",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failed rule that has a template. Validation of a
// bare variable has no field name, so it is reported as "value".
func message(err error) string {
	var errs val.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	for _, e := range errs {
		tmpl, ok := messages[e.Tag()]
		if !ok {
			continue
		}

		field := e.Field()
		if field == "" {
			field = valueLabel
		}

		return strings.NewReplacer("{field}", field, "{param}", e.Param()).Replace(tmpl)
	}

	return errs.Error()
}
