package models

import (
	"time"

	"gorm.io/datatypes"
)

type EventType string

const (
	EventConference EventType = "conference"
	EventWorkshop   EventType = "workshop"
	EventHackathon  EventType = "hackathon"
	EventMeetup     EventType = "meetup"
)

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

type LocationType string

const (
	LocationPhysical LocationType = "physical"
	LocationVirtual  LocationType = "virtual"
	LocationHybrid   LocationType = "hybrid"
)

type EventLocation struct {
	Type        LocationType `json:"type"`
	Venue       string       `json:"venue,omitempty"`
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	MeetingLink string       `json:"meeting_link,omitempty"`
}

// HackathonFields are only valid on events of type hackathon.
type HackathonFields struct {
	ProblemStatements datatypes.JSONSlice[string] `json:"problem_statements,omitempty"`
	JudgingCriteria   datatypes.JSONSlice[string] `json:"judging_criteria,omitempty"`
	PrizePool         string                      `json:"prize_pool,omitempty"`
	TeamSizeMin       int                         `json:"team_size_min,omitempty"`
	TeamSizeMax       int                         `json:"team_size_max,omitempty"`
}

type Event struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	OrganizationID   string      `json:"organization_id" gorm:"index"`
	OrganizationName string      `json:"organization_name"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Type             EventType   `json:"type"`
	Status           EventStatus `json:"status" gorm:"index"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`

	EventLocation `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	// RegisteredCount only moves through the registration store's
	// atomic increment/decrement, never through a plain update.
	Capacity        int `json:"capacity"`
	RegisteredCount int `json:"registered_count"`

	BannerImage  string                      `json:"banner_image,omitempty"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	IsPublic     bool                        `json:"is_public"`
	Requirements string                      `json:"requirements,omitempty"`
	Agenda       string                      `json:"agenda,omitempty"`

	HackathonFields `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
