package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"e164":        "{field} must be a phone number in E.164 format",
	"nefield":     "{field} must differ from {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failed rule. name overrides the field name for single value checks.
func message(err error, name string) string {
	var failures val.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return err.Error()
	}

	first := failures[0]

	template, ok := messages[first.Tag()]
	if !ok {
		return failures.Error()
	}

	field := first.Field()
	if name != "" {
		field = name
	}

	return strings.NewReplacer("{field}", field, "{param}", first.Param()).Replace(template)
}
