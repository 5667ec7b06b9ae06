package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gatherhub/eventhub-api/internal/auth"
	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/gatherhub/eventhub-api/internal/store"
)

type RegistrationHandler struct {
	registrations *store.RegistrationStore
	events        *store.EventStore
	profiles      *store.ProfileStore
	authHandler   *auth.AuthHandler
}

func NewRegistrationHandler(registrations *store.RegistrationStore, events *store.EventStore, profiles *store.ProfileStore, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		events:        events,
		profiles:      profiles,
		authHandler:   authHandler,
	}
}

func (h *RegistrationHandler) requireParticipant(ctx context.Context, cookie string) (*auth.Identity, error) {
	identity, err := h.authHandler.Authorize(ctx, cookie)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleParticipant {
		return nil, huma.Error403Forbidden("Only participant accounts can register for events")
	}
	return identity, nil
}

type RegisterRequest struct {
	auth.AuthInput
	EventID string `path:"id" doc:"Event ID"`
	Body    struct {
		TeamID   string `json:"team_id,omitempty" doc:"Hackathon team ID"`
		TeamName string `json:"team_name,omitempty" doc:"Hackathon team name"`
	}
}

type RegisterResponse struct {
	Body struct {
		ID string `json:"id"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	identity, err := h.requireParticipant(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := h.events.GetEventByID(ctx, input.EventID)
	if err != nil {
		return nil, storeError(err, "load event")
	}

	profile, err := h.profiles.GetByUID(ctx, identity.UID)
	if err != nil {
		return nil, storeError(err, "load profile")
	}

	id, err := h.registrations.Register(ctx, store.RegisterParams{
		EventID:          event.ID,
		EventTitle:       event.Title,
		ParticipantID:    identity.UID,
		ParticipantName:  profile.DisplayName,
		ParticipantEmail: profile.Email,
		TeamID:           input.Body.TeamID,
		TeamName:         input.Body.TeamName,
	})
	if err != nil {
		return nil, storeError(err, "register for event")
	}

	res := &RegisterResponse{}
	res.Body.ID = id
	return res, nil
}

type CancelRegistrationRequest struct {
	auth.AuthInput
	ID string `path:"id" doc:"Registration ID"`
}

func (h *RegistrationHandler) HandleCancel(ctx context.Context, input *CancelRegistrationRequest) (*MessageResponse, error) {
	identity, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	registration, err := h.registrations.GetRegistration(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "load registration")
	}
	if identity.Role != models.RoleAdmin && registration.ParticipantID != identity.UID {
		return nil, huma.Error403Forbidden("Registration belongs to another participant")
	}

	if err := h.registrations.Cancel(ctx, registration.ID, registration.EventID); err != nil {
		return nil, storeError(err, "cancel registration")
	}

	res := &MessageResponse{}
	res.Body.Message = "Registration cancelled"
	return res, nil
}

type CheckInRequest struct {
	auth.AuthInput
	ID string `path:"id" doc:"Registration ID"`
}

func (h *RegistrationHandler) HandleCheckIn(ctx context.Context, input *CheckInRequest) (*MessageResponse, error) {
	identity, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	registration, err := h.registrations.GetRegistration(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "load registration")
	}

	// Check-in is done at the door by the event's organization.
	if identity.Role != models.RoleAdmin {
		event, err := h.events.GetEventByID(ctx, registration.EventID)
		if err != nil {
			return nil, storeError(err, "load event")
		}
		if identity.Role != models.RoleOrganization || event.OrganizationID != identity.UID {
			return nil, huma.Error403Forbidden("Only the organizing account can check participants in")
		}
	}

	if err := h.registrations.CheckIn(ctx, registration.ID); err != nil {
		return nil, storeError(err, "check in")
	}

	res := &MessageResponse{}
	res.Body.Message = "Checked in"
	return res, nil
}

type ListMyRegistrationsRequest struct {
	auth.AuthInput
}

type RegistrationListResponse struct {
	Body struct {
		Registrations []models.Registration `json:"registrations"`
	}
}

func (h *RegistrationHandler) HandleListMine(ctx context.Context, input *ListMyRegistrationsRequest) (*RegistrationListResponse, error) {
	identity, err := h.requireParticipant(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	registrations, err := h.registrations.ListParticipantRegistrations(ctx, identity.UID)
	if err != nil {
		return nil, storeError(err, "list registrations")
	}

	res := &RegistrationListResponse{}
	res.Body.Registrations = registrations
	return res, nil
}

type ListEventRegistrationsRequest struct {
	auth.AuthInput
	EventID string `path:"id" doc:"Event ID"`
}

func (h *RegistrationHandler) HandleListForEvent(ctx context.Context, input *ListEventRegistrationsRequest) (*RegistrationListResponse, error) {
	identity, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := h.events.GetEventByID(ctx, input.EventID)
	if err != nil {
		return nil, storeError(err, "load event")
	}
	if identity.Role != models.RoleAdmin &&
		(identity.Role != models.RoleOrganization || event.OrganizationID != identity.UID) {
		return nil, huma.Error403Forbidden("Only the organizing account can list registrations")
	}

	registrations, err := h.registrations.ListEventRegistrations(ctx, event.ID)
	if err != nil {
		return nil, storeError(err, "list registrations")
	}

	res := &RegistrationListResponse{}
	res.Body.Registrations = registrations
	return res, nil
}
