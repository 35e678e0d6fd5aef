package application

import (
	"errors"
	"strings"

	"github.com/example/appointment-booking/internal/validation"
)

var (
	// ErrUnauthorized is returned when an admin-only operation runs without an admin session.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrSlotUnavailable is returned when a time slot is not offered or already taken.
	ErrSlotUnavailable = errors.New("application: time slot unavailable")
	// ErrInvalidTransition is returned for appointment status changes the lifecycle forbids.
	ErrInvalidTransition = errors.New("application: invalid status transition")
	// ErrStepIncomplete is returned when the booking workflow cannot advance.
	ErrStepIncomplete = errors.New("application: booking step incomplete")
	// ErrInvalidDate is returned for malformed or past booking dates.
	ErrInvalidDate = errors.New("application: invalid date")
)

// ValidationError captures field level validation issues that callers can surface to users.
// Errors keep the order in which the form fields are checked.
type ValidationError struct {
	Errors []validation.FieldError
}

func newValidationError(errs []validation.FieldError) *ValidationError {
	v := &ValidationError{}
	for _, e := range errs {
		v.add(e.Field, e.Message)
	}
	return v
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// Field returns the message recorded for field.
func (v *ValidationError) Field(field string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, e := range v.Errors {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// add records a field level validation error. A field keeps its first message.
func (v *ValidationError) add(field, message string) {
	if _, exists := v.Field(field); exists {
		return
	}
	v.Errors = append(v.Errors, validation.FieldError{Field: field, Message: message})
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil {
		return
	}
	for _, e := range other.Errors {
		v.add(e.Field, e.Message)
	}
}
