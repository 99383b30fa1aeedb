package platform

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the platform reports no such entity (404).
var ErrNotFound = errors.New("not found")

// APIError is any transport, auth, or backend-side failure. It is never
// retried here; the platform's own rate limiting is opaque to this client.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform API %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform API %s returned %d", e.Endpoint, e.StatusCode)
}
