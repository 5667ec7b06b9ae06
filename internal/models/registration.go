package models

import (
	"time"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationAttended  RegistrationStatus = "attended"
)

// Registration claims one seat of an event. At most one non-cancelled
// registration may exist per (event, participant) pair; the registration
// store enforces this inside its transaction rather than with a unique
// index, because a cancelled row must not block re-registration.
type Registration struct {
	ID            string `json:"id" gorm:"primaryKey"`
	EventID       string `json:"event_id" gorm:"index:idx_event_participant"`
	EventTitle    string `json:"event_title"`
	ParticipantID string `json:"participant_id" gorm:"index:idx_event_participant"`

	ParticipantName  string `json:"participant_name"`
	ParticipantEmail string `json:"participant_email"`

	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	CheckedIn    bool               `json:"checked_in"`
	CheckedInAt  *time.Time         `json:"checked_in_at,omitempty"`

	// Hackathon-specific snapshot
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
}
