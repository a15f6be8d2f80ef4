// Package apierr maps adapter failures onto HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	"eventBridge/internal/adapter"
	"eventBridge/internal/upstream"
)

const msgInternal = "internal error"

// Status picks the response code for an adapter error: 400 for bad input,
// 502 when the upstream could not answer and 422 when it refused.
func Status(err error) int {
	var (
		validationErr  *adapter.ValidationError
		reservationErr *adapter.ReservationError
		rsvpErr        *adapter.RsvpError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, upstream.ErrUnavailable):
		return http.StatusBadGateway
	case errors.As(err, &reservationErr), errors.As(err, &rsvpErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text shown to the caller. Unclassified errors are not
// echoed back.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return msgInternal
	}

	return err.Error()
}
