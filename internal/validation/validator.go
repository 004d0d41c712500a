// Package validation wraps go-playground/validator with domain error conversion.
package validation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
)

// Validator validates structs tagged with `validate`.
type Validator struct {
	v *validator.Validate
}

// New creates a validator.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate validates a struct and returns a domain validation error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return apperrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "min":
		return fmt.Sprintf("must have at least %s items", e.Param())
	case "eqfield":
		return "must match " + e.Param()
	default:
		return "is invalid"
	}
}

// Describe flattens the field messages of a validation error into one line.
func Describe(err error) string {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		return err.Error()
	}
	fields, ok := domainErr.Details.(map[string]string)
	if !ok || len(fields) == 0 {
		return domainErr.Message
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := domainErr.Message + ":"
	for _, k := range keys {
		msg += fmt.Sprintf(" %s %s;", k, fields[k])
	}
	return msg[:len(msg)-1]
}
