package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"salon/shared/base64"
	"salon/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds a decoded request body; it leaves room for a base64 avatar.
const MaxBodyBytes = 4 << 20

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := validate.RegisterValidation("image", validateImage); err != nil {
		panic(err)
	}
}

// validateImage accepts an http(s) URL or a base64 data uri carrying a supported image type.
func validateImage(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if base64.IsDataURI(value) {
		return base64.Extension(base64.GetContentType(value)) != ""
	}

	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}

	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// Validate decodes a JSON body into data and validates it. Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(io.LimitReader(r, MaxBodyBytes)).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}
