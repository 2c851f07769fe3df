package middleware

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// Report json field names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validator: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validator.Struct(i)
}

// ValidationDetails flattens validator errors into field -> failed rule
func ValidationDetails(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		field := ve.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		details[field] = rule
	}
	return details
}
