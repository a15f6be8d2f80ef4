package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable marks transport failures and responses that say nothing
// about the request itself (throttling, server errors).
var ErrUnavailable = errors.New("upstream unavailable")

// Error is a non-2xx answer from the upstream service.
type Error struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: upstream returned %d (%s): %s", e.Op, e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.StatusCode, e.Message)
}

// Temporary reports whether repeating the same request may succeed.
func (e *Error) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func (e *Error) Is(target error) bool {
	return target == ErrUnavailable && e.Temporary()
}

// Reason returns the message the upstream gave for err, or err's own text
// when the failure never reached the upstream.
func Reason(err error) string {
	var upErr *Error
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}

	return err.Error()
}
