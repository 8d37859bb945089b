package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gt":       "{field} must be greater than {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param}",
	"min":      "{field} must be at least {param}",
	"email":    "{field} must be a valid email address",
	"datetime": "{field} must match the format {param}",
	"numeric":  "{field} must contain digits only",
	"uuid":     "{field} must be a valid uuid",
	"image":    "{field} must be an http(s) URL or a png, jpeg or webp data uri",
}

// message renders the first failed rule that has a template. The field name is empty for
// ValidateVar, in which case "value" is used.
func message(err error) string {
	var errs val.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	for _, fe := range errs {
		tmpl, ok := messages[fe.Tag()]
		if !ok {
			continue
		}

		field := fe.Field()
		if field == "" {
			field = "value"
		}

		return strings.NewReplacer("{field}", field, "{param}", fe.Param()).Replace(tmpl)
	}

	return errs.Error()
}
