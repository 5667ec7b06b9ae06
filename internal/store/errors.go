package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the id resolved to no document.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRegistration means the participant already holds a
	// non-cancelled registration for the event.
	ErrDuplicateRegistration = errors.New("already registered for this event")

	// ErrCapacityExceeded means the event has no seats left.
	ErrCapacityExceeded = errors.New("event is at full capacity")

	// ErrAlreadyCancelled means the registration was cancelled before.
	ErrAlreadyCancelled = errors.New("registration already cancelled")

	// ErrInvalidTransition means the requested event status change is not
	// permitted from the event's current status.
	ErrInvalidTransition = errors.New("invalid event status transition")
)

// ValidationError reports malformed or missing required input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
