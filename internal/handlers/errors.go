package handlers

import (
	"errors"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gatherhub/eventhub-api/internal/store"
)

// storeError translates store failures into HTTP responses. Everything
// surfaces to the caller; nothing is retried.
func storeError(err error, action string) error {
	switch {
	case store.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("Not found")
	case errors.Is(err, store.ErrDuplicateRegistration):
		return huma.Error409Conflict("Already registered for this event")
	case errors.Is(err, store.ErrCapacityExceeded):
		return huma.Error409Conflict("Event is at full capacity")
	case errors.Is(err, store.ErrAlreadyCancelled):
		return huma.Error409Conflict("Registration already cancelled")
	case errors.Is(err, store.ErrInvalidTransition):
		return huma.Error409Conflict(err.Error())
	default:
		log.Printf("Failed to %s: %v", action, err)
		return huma.Error500InternalServerError("Failed to " + action)
	}
}
