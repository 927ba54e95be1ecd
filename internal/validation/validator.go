// Package validation wraps go-playground/validator with a shared instance
// and form-friendly error messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed form field
type FieldError struct {
	Field string
	Tag   string
}

// Error returns a human-readable message for the field
func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Errors is the list of field failures returned by ValidateStruct
type Errors []FieldError

func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names so messages match form field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates s and returns Errors when any field fails
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	result := make(Errors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		result = append(result, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return result
}
