package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags for the values that arrive outside a struct body.
var (
	MovieIDRule = fmt.Sprintf("gte=%d,lte=%d", MinMovieID, MaxMovieID)
	YearRule    = fmt.Sprintf("gte=%d,lte=%d", MinYear, MaxYear)
)

// NewValidator returns a [validator.Validate] that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldMessage renders a human readable message for a failed validation tag.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String should have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String should have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

// FieldType names the failure kind reported alongside [FieldMessage].
func FieldType(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing"
	case "min":
		if fe.Kind() == reflect.String {
			return "string_too_short"
		}
		return "greater_than_equal"
	case "max":
		if fe.Kind() == reflect.String {
			return "string_too_long"
		}
		return "less_than_equal"
	case "gte":
		return "greater_than_equal"
	case "lte":
		return "less_than_equal"
	default:
		return fe.Tag()
	}
}
