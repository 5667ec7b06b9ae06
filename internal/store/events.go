package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventStore persists event documents and their status lifecycle.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// EventForm is the raw create/edit payload. Tags is a comma-separated
// string; ProblemStatements and JudgingCriteria are newline-separated.
type EventForm struct {
	Title        string
	Description  string
	Type         models.EventType
	StartDate    time.Time
	EndDate      time.Time
	LocationType models.LocationType
	Venue        string
	Address      string
	City         string
	Country      string
	MeetingLink  string
	Capacity     int
	Tags         string
	IsPublic     bool
	BannerImage  string
	Requirements string
	Agenda       string

	// Hackathon only
	ProblemStatements string
	JudgingCriteria   string
	PrizePool         string
	TeamSizeMin       int
	TeamSizeMax       int
}

// EventUpdate is a partial edit; nil fields are left untouched.
type EventUpdate struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Capacity     *int
	Tags         *string
	IsPublic     *bool
	BannerImage  *string
	Requirements *string
	Agenda       *string
}

var validEventTypes = map[models.EventType]bool{
	models.EventConference: true,
	models.EventWorkshop:   true,
	models.EventHackathon:  true,
	models.EventMeetup:     true,
}

var validLocationTypes = map[models.LocationType]bool{
	models.LocationPhysical: true,
	models.LocationVirtual:  true,
	models.LocationHybrid:   true,
}

// Permitted status transitions. completed and cancelled are terminal.
var statusTransitions = map[models.EventStatus][]models.EventStatus{
	models.StatusDraft:     {models.StatusPublished, models.StatusCancelled},
	models.StatusPublished: {models.StatusOngoing, models.StatusCancelled},
	models.StatusOngoing:   {models.StatusCompleted, models.StatusCancelled},
}

func (f *EventForm) validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return validationErr("title", "required")
	}
	if strings.TrimSpace(f.Description) == "" {
		return validationErr("description", "required")
	}
	if !validEventTypes[f.Type] {
		return validationErr("type", fmt.Sprintf("unknown event type %q", f.Type))
	}
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return validationErr("dates", "start and end dates are required")
	}
	if f.EndDate.Before(f.StartDate) {
		return validationErr("dates", "end date before start date")
	}
	if !validLocationTypes[f.LocationType] {
		return validationErr("location", fmt.Sprintf("unknown location type %q", f.LocationType))
	}
	if f.Capacity <= 0 {
		return validationErr("capacity", "must be a positive integer")
	}
	if f.Type != models.EventHackathon {
		if f.ProblemStatements != "" || f.JudgingCriteria != "" || f.PrizePool != "" ||
			f.TeamSizeMin != 0 || f.TeamSizeMax != 0 {
			return validationErr("hackathon fields", fmt.Sprintf("not allowed on %s events", f.Type))
		}
	} else if f.TeamSizeMin > 0 && f.TeamSizeMax > 0 && f.TeamSizeMin > f.TeamSizeMax {
		return validationErr("team size", "minimum exceeds maximum")
	}
	return nil
}

// CreateEvent validates the form and stores a new draft event with a zero
// registered count.
func (s *EventStore) CreateEvent(ctx context.Context, orgID, orgName string, form EventForm) (string, error) {
	if err := form.validate(); err != nil {
		return "", err
	}

	now := time.Now()
	event := models.Event{
		ID:               uuid.NewString(),
		OrganizationID:   orgID,
		OrganizationName: orgName,
		Title:            form.Title,
		Description:      form.Description,
		Type:             form.Type,
		Status:           models.StatusDraft,
		StartDate:        form.StartDate,
		EndDate:          form.EndDate,
		EventLocation: models.EventLocation{
			Type:        form.LocationType,
			Venue:       form.Venue,
			Address:     form.Address,
			City:        form.City,
			Country:     form.Country,
			MeetingLink: form.MeetingLink,
		},
		Capacity:        form.Capacity,
		RegisteredCount: 0,
		BannerImage:     form.BannerImage,
		Tags:            datatypes.NewJSONSlice(parseTags(form.Tags)),
		IsPublic:        form.IsPublic,
		Requirements:    form.Requirements,
		Agenda:          form.Agenda,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if form.Type == models.EventHackathon {
		event.HackathonFields = models.HackathonFields{
			ProblemStatements: datatypes.NewJSONSlice(parseLines(form.ProblemStatements)),
			JudgingCriteria:   datatypes.NewJSONSlice(parseLines(form.JudgingCriteria)),
			PrizePool:         form.PrizePool,
			TeamSizeMin:       form.TeamSizeMin,
			TeamSizeMax:       form.TeamSizeMax,
		}
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}
	return event.ID, nil
}

func (s *EventStore) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	return &event, nil
}

// ListPublicEvents returns published public events, newest start date first.
func (s *EventStore) ListPublicEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("is_public = ? AND status = ?", true, models.StatusPublished).
		Order("start_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("listing public events: %w", err)
	}
	return events, nil
}

func (s *EventStore) ListOrganizationEvents(ctx context.Context, orgID string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("listing organization events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies a partial edit, re-parsing tags when present.
func (s *EventStore) UpdateEvent(ctx context.Context, id string, update EventUpdate) error {
	updates := map[string]any{"updated_at": time.Now()}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return validationErr("title", "required")
		}
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.StartDate != nil {
		updates["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		updates["end_date"] = *update.EndDate
	}
	if update.Capacity != nil {
		if *update.Capacity <= 0 {
			return validationErr("capacity", "must be a positive integer")
		}
		updates["capacity"] = *update.Capacity
	}
	if update.Tags != nil {
		updates["tags"] = datatypes.NewJSONSlice(parseTags(*update.Tags))
	}
	if update.IsPublic != nil {
		updates["is_public"] = *update.IsPublic
	}
	if update.BannerImage != nil {
		updates["banner_image"] = *update.BannerImage
	}
	if update.Requirements != nil {
		updates["requirements"] = *update.Requirements
	}
	if update.Agenda != nil {
		updates["agenda"] = *update.Agenda
	}

	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("updating event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEventStatus advances the event through its lifecycle. Transitions
// outside the table fail with ErrInvalidTransition.
func (s *EventStore) UpdateEventStatus(ctx context.Context, id string, status models.EventStatus) error {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range statusTransitions[event.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, event.Status, status)
	}

	err = s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("updating event status: %w", err)
	}
	return nil
}

// DeleteEvent hard-deletes the event. Registrations are not cascaded;
// orphaned registration rows keep their denormalized event title.
func (s *EventStore) DeleteEvent(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// parseTags splits a comma-separated string, trimming whitespace and
// dropping empty segments.
func parseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseLines splits a newline-separated string, dropping blank lines.
func parseLines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
