package upstream

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned when the profile store has no record for
// the requested id.
var ErrProfileNotFound = errors.New("profile not found")

// TransportError wraps a network failure or an unexpected status from one of
// the remote stores. Calls are never retried here; the caller decides whether
// to retry or fall back to a cached summary.
type TransportError struct {
	Op     string
	Status int // zero when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
