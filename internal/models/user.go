package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleOrganization UserRole = "organization"
	RoleParticipant  UserRole = "participant"
)

// UserProfile is written once at signup; Role never changes after creation.
type UserProfile struct {
	UID              string   `json:"uid" gorm:"primaryKey"`
	Email            string   `json:"email" gorm:"uniqueIndex"`
	PasswordHash     string   `json:"-"`
	Role             UserRole `json:"role"`
	DisplayName      string   `json:"display_name"`
	OrganizationName string   `json:"organization_name,omitempty"`

	// Participant-only fields
	PhoneNumber string                      `json:"phone_number,omitempty"`
	TeamName    string                      `json:"team_name,omitempty"`
	Skills      datatypes.JSONSlice[string] `json:"skills,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
