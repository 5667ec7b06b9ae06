package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherhub/eventhub-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.UserProfile{}, &models.Event{}, &models.Registration{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func validForm() EventForm {
	return EventForm{
		Title:        "Go Meetup",
		Description:  "Monthly gathering",
		Type:         models.EventMeetup,
		StartDate:    time.Now().Add(24 * time.Hour),
		EndDate:      time.Now().Add(26 * time.Hour),
		LocationType: models.LocationPhysical,
		Venue:        "Community Hall",
		City:         "Prague",
		Capacity:     50,
		Tags:         "go, backend",
		IsPublic:     true,
	}
}

func TestCreateEvent_TagParsing(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	form := validForm()
	form.Tags = "tech, , ai"

	id, err := store.CreateEvent(ctx, "org-1", "Acme", form)
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	event, err := store.GetEventByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEventByID returned error: %v", err)
	}

	if len(event.Tags) != 2 || event.Tags[0] != "tech" || event.Tags[1] != "ai" {
		t.Errorf("expected tags [tech ai], got %v", event.Tags)
	}
	if event.Status != models.StatusDraft {
		t.Errorf("expected draft status, got %s", event.Status)
	}
	if event.RegisteredCount != 0 {
		t.Errorf("expected zero registered count, got %d", event.RegisteredCount)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*EventForm)
	}{
		{"missing title", func(f *EventForm) { f.Title = " " }},
		{"missing description", func(f *EventForm) { f.Description = "" }},
		{"zero capacity", func(f *EventForm) { f.Capacity = 0 }},
		{"negative capacity", func(f *EventForm) { f.Capacity = -3 }},
		{"missing dates", func(f *EventForm) { f.StartDate = time.Time{} }},
		{"end before start", func(f *EventForm) { f.EndDate = f.StartDate.Add(-time.Hour) }},
		{"unknown type", func(f *EventForm) { f.Type = "concert" }},
		{"unknown location type", func(f *EventForm) { f.LocationType = "metaverse" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			if _, err := store.CreateEvent(ctx, "org-1", "Acme", form); !IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateEvent_HackathonFields(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	t.Run("rejected on meetup", func(t *testing.T) {
		form := validForm()
		form.PrizePool = "$5000"
		if _, err := store.CreateEvent(ctx, "org-1", "Acme", form); !IsValidation(err) {
			t.Errorf("expected ValidationError for hackathon fields on a meetup, got %v", err)
		}
	})

	t.Run("parsed on hackathon", func(t *testing.T) {
		form := validForm()
		form.Type = models.EventHackathon
		form.ProblemStatements = "Build a CLI\n\nBuild a bot\n  \n"
		form.JudgingCriteria = "Impact\nPolish"
		form.PrizePool = "$5000"
		form.TeamSizeMin = 2
		form.TeamSizeMax = 5

		id, err := store.CreateEvent(ctx, "org-1", "Acme", form)
		if err != nil {
			t.Fatalf("CreateEvent returned error: %v", err)
		}

		event, err := store.GetEventByID(ctx, id)
		if err != nil {
			t.Fatalf("GetEventByID returned error: %v", err)
		}
		if len(event.ProblemStatements) != 2 {
			t.Errorf("expected 2 problem statements, got %v", event.ProblemStatements)
		}
		if len(event.JudgingCriteria) != 2 {
			t.Errorf("expected 2 judging criteria, got %v", event.JudgingCriteria)
		}
	})

	t.Run("team size min over max", func(t *testing.T) {
		form := validForm()
		form.Type = models.EventHackathon
		form.TeamSizeMin = 6
		form.TeamSizeMax = 2
		if _, err := store.CreateEvent(ctx, "org-1", "Acme", form); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestListPublicEvents(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	mk := func(title string, start time.Time, public bool) string {
		form := validForm()
		form.Title = title
		form.StartDate = start
		form.EndDate = start.Add(2 * time.Hour)
		form.IsPublic = public
		id, err := store.CreateEvent(ctx, "org-1", "Acme", form)
		if err != nil {
			t.Fatalf("CreateEvent returned error: %v", err)
		}
		return id
	}

	base := time.Now().Add(24 * time.Hour)
	early := mk("early", base, true)
	late := mk("late", base.Add(48*time.Hour), true)
	draft := mk("still draft", base.Add(12*time.Hour), true)
	private := mk("private", base.Add(72*time.Hour), false)

	for _, id := range []string{early, late, private} {
		if err := store.UpdateEventStatus(ctx, id, models.StatusPublished); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}
	_ = draft // never published

	events, err := store.ListPublicEvents(ctx)
	if err != nil {
		t.Fatalf("ListPublicEvents returned error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 public events, got %d", len(events))
	}
	if events[0].Title != "late" || events[1].Title != "early" {
		t.Errorf("expected start-date-descending order [late early], got [%s %s]",
			events[0].Title, events[1].Title)
	}
}

func TestUpdateEvent(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, "org-1", "Acme", validForm())
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	before, _ := store.GetEventByID(ctx, id)

	newTitle := "Go Meetup, rescheduled"
	newTags := "go,community"
	if err := store.UpdateEvent(ctx, id, EventUpdate{Title: &newTitle, Tags: &newTags}); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}

	after, err := store.GetEventByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEventByID returned error: %v", err)
	}
	if after.Title != newTitle {
		t.Errorf("expected updated title, got %q", after.Title)
	}
	if len(after.Tags) != 2 || after.Tags[1] != "community" {
		t.Errorf("expected re-parsed tags, got %v", after.Tags)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Error("expected updated_at to be bumped")
	}
	// Untouched fields survive a partial update
	if after.Description != before.Description || after.Capacity != before.Capacity {
		t.Error("partial update modified untouched fields")
	}

	if err := store.UpdateEvent(ctx, "no-such-id", EventUpdate{Title: &newTitle}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateEventStatus_Transitions(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, "org-1", "Acme", validForm())
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	// draft -> ongoing skips published
	if err := store.UpdateEventStatus(ctx, id, models.StatusOngoing); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	for _, status := range []models.EventStatus{models.StatusPublished, models.StatusOngoing, models.StatusCompleted} {
		if err := store.UpdateEventStatus(ctx, id, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// completed is terminal
	if err := store.UpdateEventStatus(ctx, id, models.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition out of completed, got %v", err)
	}

	t.Run("cancel from published", func(t *testing.T) {
		id, err := store.CreateEvent(ctx, "org-1", "Acme", validForm())
		if err != nil {
			t.Fatalf("CreateEvent returned error: %v", err)
		}
		if err := store.UpdateEventStatus(ctx, id, models.StatusPublished); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		if err := store.UpdateEventStatus(ctx, id, models.StatusCancelled); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
	})
}

func TestDeleteEvent(t *testing.T) {
	store := NewEventStore(setupDB(t))
	ctx := context.Background()

	id, err := store.CreateEvent(ctx, "org-1", "Acme", validForm())
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	if err := store.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("DeleteEvent returned error: %v", err)
	}
	if _, err := store.GetEventByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
