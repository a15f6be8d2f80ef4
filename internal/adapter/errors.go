package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventBridge/internal/upstream"
)

const (
	msgEventsUnavailable  = "Unable to load events."
	msgTicketsUnavailable = "Unable to load tickets."
	msgUnknownRsvpError   = "Unknown RSVP Error"
)

// UnavailableError is a query that could not complete. Message is safe to
// show to end users; the cause stays in Err.
type UnavailableError struct {
	Op      string
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	return e.Message
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == upstream.ErrUnavailable
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError is raised before any upstream call when local input is
// missing or malformed.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}

	return strings.Join(msgs, ", ")
}

// ReservationError carries the upstream's reason for rejecting a reservation.
type ReservationError struct {
	Reason string
	Err    error
}

func (e *ReservationError) Error() string {
	return "Reservation Error: " + e.Reason
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

type RsvpError struct {
	Reason string
	Err    error
}

func (e *RsvpError) Error() string {
	return "RSVP Error: " + e.Reason
}

func (e *RsvpError) Unwrap() error {
	return e.Err
}

func validationError(err error) error {
	var validateErr validator.ValidationErrors
	if !errors.As(err, &validateErr) {
		return &ValidationError{Errors: []FieldError{{Message: err.Error()}}}
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(validateErr))}
	for _, fe := range validateErr {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", fe.Field())
	case "email":
		return fmt.Sprintf("field %s is not a valid email", fe.Field())
	case "gt":
		return fmt.Sprintf("field %s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("field %s must contain at least %s item(s)", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("field %s is not valid", fe.Field())
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}
