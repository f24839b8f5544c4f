package upstream

import (
	"errors"
	"fmt"
)

// StatusError means the backend was reachable but answered with a
// non-2xx status. Handlers propagate the status and body downstream.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// ErrTimeout means the call exceeded the fixed request timeout.
var ErrTimeout = errors.New("upstream request timed out")

// TransportError covers every other network-level failure: DNS,
// connection refused, resets.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
