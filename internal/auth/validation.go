package auth

import (
	"fmt"
	"strings"
)

// ValidationError reports a single failed input rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates input validation errors.
type Validator struct {
	errors []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors = append(v.errors, ValidationError{Field: field, Message: "is required"})
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be no more than %d characters", max),
		})
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// FirstError returns the first error message or an empty string.
func (v *Validator) FirstError() string {
	if len(v.errors) > 0 {
		return v.errors[0].Error()
	}
	return ""
}

func validateCredentials(username, password string) *Validator {
	v := NewValidator()
	v.Required("username", username).MaxLength("username", username, 255)
	v.Required("password", password).MaxLength("password", password, 255)
	return v
}
