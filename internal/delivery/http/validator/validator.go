// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports JSON field names
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate validates a request struct
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return errors.New(formatErrors(validationErrs))
		}

		return errors.WithStack(err)
	}

	return nil
}

func formatErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		field := strings.TrimPrefix(fieldErr.Namespace(), rootNamespace(fieldErr))
		msg := field + " failed on '" + fieldErr.Tag() + "'"
		if fieldErr.Param() != "" {
			msg += " (" + fieldErr.Param() + ")"
		}
		messages = append(messages, msg)
	}

	return strings.Join(messages, "; ")
}

// rootNamespace returns the struct name prefix of a namespace, e.g. "OptimizeRoutesRequest."
func rootNamespace(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[:idx+1]
	}

	return ""
}
