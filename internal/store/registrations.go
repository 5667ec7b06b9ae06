package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationStore is the single write path coupling participants to
// events. It owns the capacity and one-registration-per-participant
// invariants and all registered-count bookkeeping.
type RegistrationStore struct {
	db *gorm.DB
}

func NewRegistrationStore(db *gorm.DB) *RegistrationStore {
	return &RegistrationStore{db: db}
}

// RegisterParams identifies the participant and the event being claimed.
// EventTitle, ParticipantName and ParticipantEmail are denormalized
// snapshots taken at registration time.
type RegisterParams struct {
	EventID          string
	EventTitle       string
	ParticipantID    string
	ParticipantName  string
	ParticipantEmail string
	TeamID           string
	TeamName         string
}

// Register creates a confirmed registration. The duplicate check and the
// counter increment run in one transaction; the increment is conditional
// on registered_count < capacity, so two near-simultaneous registrations
// for the last seat cannot both succeed.
func (s *RegistrationStore) Register(ctx context.Context, p RegisterParams) (string, error) {
	if p.EventID == "" || p.ParticipantID == "" {
		return "", validationErr("registration", "event id and participant id are required")
	}

	registrationID := uuid.NewString()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cancelled registrations do not block re-registering.
		var existing int64
		err := tx.Model(&models.Registration{}).
			Where("event_id = ? AND participant_id = ? AND status <> ?",
				p.EventID, p.ParticipantID, models.RegistrationCancelled).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("checking existing registration: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateRegistration
		}

		res := tx.Exec(
			"UPDATE events SET registered_count = registered_count + 1 WHERE id = ? AND registered_count < capacity",
			p.EventID)
		if res.Error != nil {
			return fmt.Errorf("incrementing registered count: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Either the event is full or it does not exist.
			var count int64
			if err := tx.Model(&models.Event{}).Where("id = ?", p.EventID).Count(&count).Error; err != nil {
				return fmt.Errorf("checking event: %w", err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrCapacityExceeded
		}

		registration := models.Registration{
			ID:               registrationID,
			EventID:          p.EventID,
			EventTitle:       p.EventTitle,
			ParticipantID:    p.ParticipantID,
			ParticipantName:  p.ParticipantName,
			ParticipantEmail: p.ParticipantEmail,
			Status:           models.RegistrationConfirmed,
			RegisteredAt:     time.Now(),
			CheckedIn:        false,
			TeamID:           p.TeamID,
			TeamName:         p.TeamName,
		}
		if err := tx.Create(&registration).Error; err != nil {
			return fmt.Errorf("creating registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return registrationID, nil
}

// Cancel flips the registration to cancelled and gives the seat back.
// Cancelling twice fails with ErrAlreadyCancelled, and the decrement is
// floor-guarded so the counter can never go negative.
func (s *RegistrationStore) Cancel(ctx context.Context, registrationID, eventID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration models.Registration
		err := tx.First(&registration, "id = ? AND event_id = ?", registrationID, eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading registration: %w", err)
		}
		if registration.Status == models.RegistrationCancelled {
			return ErrAlreadyCancelled
		}

		err = tx.Model(&registration).Update("status", models.RegistrationCancelled).Error
		if err != nil {
			return fmt.Errorf("cancelling registration: %w", err)
		}

		err = tx.Exec(
			"UPDATE events SET registered_count = registered_count - 1 WHERE id = ? AND registered_count > 0",
			eventID).Error
		if err != nil {
			return fmt.Errorf("decrementing registered count: %w", err)
		}
		return nil
	})
}

// CheckIn marks the participant as arrived and the registration attended.
func (s *RegistrationStore) CheckIn(ctx context.Context, registrationID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration models.Registration
		err := tx.First(&registration, "id = ?", registrationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading registration: %w", err)
		}
		if registration.Status == models.RegistrationCancelled {
			return validationErr("registration", "cancelled registrations cannot check in")
		}
		if registration.CheckedIn {
			return validationErr("registration", "already checked in")
		}

		now := time.Now()
		err = tx.Model(&registration).Updates(map[string]any{
			"status":        models.RegistrationAttended,
			"checked_in":    true,
			"checked_in_at": &now,
		}).Error
		if err != nil {
			return fmt.Errorf("checking in: %w", err)
		}
		return nil
	})
}

func (s *RegistrationStore) GetRegistration(ctx context.Context, id string) (*models.Registration, error) {
	var registration models.Registration
	err := s.db.WithContext(ctx).First(&registration, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading registration: %w", err)
	}
	return &registration, nil
}

// ListParticipantRegistrations returns the participant's registrations,
// newest first. An empty slice is a valid result.
func (s *RegistrationStore) ListParticipantRegistrations(ctx context.Context, participantID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("registered_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("listing participant registrations: %w", err)
	}
	return registrations, nil
}

// ListEventRegistrations returns all registrations against an event,
// newest first.
func (s *RegistrationStore) ListEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("listing event registrations: %w", err)
	}
	return registrations, nil
}
