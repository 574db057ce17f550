package appointments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAppointmentNotFound is returned by update and reschedule when the
	// id is absent. Cancel and remove stay idempotent no-ops instead.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAppointmentCancelled is returned when rescheduling a cancelled
	// appointment; the transition is rejected at the store boundary.
	ErrAppointmentCancelled = errors.New("cannot reschedule a cancelled appointment")
)

// FieldError names a single input field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure of one request. Store
// state is unchanged when it is returned.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
