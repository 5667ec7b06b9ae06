package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gatherhub/eventhub-api/internal/auth"
	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/gatherhub/eventhub-api/internal/store"
)

type EventHandler struct {
	events      *store.EventStore
	profiles    *store.ProfileStore
	authHandler *auth.AuthHandler
}

func NewEventHandler(events *store.EventStore, profiles *store.ProfileStore, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{events: events, profiles: profiles, authHandler: authHandler}
}

// requireOrganization authorizes the request and checks the actor may
// manage events. Admins pass; participants do not.
func (h *EventHandler) requireOrganization(ctx context.Context, cookie string) (*auth.Identity, error) {
	identity, err := h.authHandler.Authorize(ctx, cookie)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleOrganization && identity.Role != models.RoleAdmin {
		return nil, huma.Error403Forbidden("Only organization accounts can manage events")
	}
	return identity, nil
}

// requireEventOwner additionally checks the event belongs to the actor's
// organization. Admins may manage any event.
func (h *EventHandler) requireEventOwner(ctx context.Context, cookie, eventID string) (*auth.Identity, *models.Event, error) {
	identity, err := h.requireOrganization(ctx, cookie)
	if err != nil {
		return nil, nil, err
	}
	event, err := h.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, storeError(err, "load event")
	}
	if identity.Role != models.RoleAdmin && event.OrganizationID != identity.UID {
		return nil, nil, huma.Error403Forbidden("Event belongs to another organization")
	}
	return identity, event, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Title        string              `json:"title" doc:"Event title" required:"true"`
		Description  string              `json:"description" doc:"Event description" required:"true"`
		Type         models.EventType    `json:"type" enum:"conference,workshop,hackathon,meetup" required:"true"`
		StartDate    time.Time           `json:"start_date" required:"true"`
		EndDate      time.Time           `json:"end_date" required:"true"`
		LocationType models.LocationType `json:"location_type" enum:"physical,virtual,hybrid" required:"true"`
		Venue        string              `json:"venue,omitempty"`
		Address      string              `json:"address,omitempty"`
		City         string              `json:"city,omitempty"`
		Country      string              `json:"country,omitempty"`
		MeetingLink  string              `json:"meeting_link,omitempty"`
		Capacity     int                 `json:"capacity" doc:"Maximum seats" required:"true"`
		Tags         string              `json:"tags,omitempty" doc:"Comma-separated tags"`
		IsPublic     bool                `json:"is_public"`
		BannerImage  string              `json:"banner_image,omitempty"`
		Requirements string              `json:"requirements,omitempty"`
		Agenda       string              `json:"agenda,omitempty"`

		ProblemStatements string `json:"problem_statements,omitempty" doc:"Newline-separated, hackathons only"`
		JudgingCriteria   string `json:"judging_criteria,omitempty" doc:"Newline-separated, hackathons only"`
		PrizePool         string `json:"prize_pool,omitempty" doc:"Hackathons only"`
		TeamSizeMin       int    `json:"team_size_min,omitempty" doc:"Hackathons only"`
		TeamSizeMax       int    `json:"team_size_max,omitempty" doc:"Hackathons only"`
	}
}

type CreateEventResponse struct {
	Body struct {
		ID string `json:"id"`
	}
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	identity, err := h.requireOrganization(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	profile, err := h.profiles.GetByUID(ctx, identity.UID)
	if err != nil {
		return nil, storeError(err, "load profile")
	}
	orgName := profile.OrganizationName
	if orgName == "" {
		orgName = profile.DisplayName
	}

	id, err := h.events.CreateEvent(ctx, identity.UID, orgName, store.EventForm{
		Title:             input.Body.Title,
		Description:       input.Body.Description,
		Type:              input.Body.Type,
		StartDate:         input.Body.StartDate,
		EndDate:           input.Body.EndDate,
		LocationType:      input.Body.LocationType,
		Venue:             input.Body.Venue,
		Address:           input.Body.Address,
		City:              input.Body.City,
		Country:           input.Body.Country,
		MeetingLink:       input.Body.MeetingLink,
		Capacity:          input.Body.Capacity,
		Tags:              input.Body.Tags,
		IsPublic:          input.Body.IsPublic,
		BannerImage:       input.Body.BannerImage,
		Requirements:      input.Body.Requirements,
		Agenda:            input.Body.Agenda,
		ProblemStatements: input.Body.ProblemStatements,
		JudgingCriteria:   input.Body.JudgingCriteria,
		PrizePool:         input.Body.PrizePool,
		TeamSizeMin:       input.Body.TeamSizeMin,
		TeamSizeMax:       input.Body.TeamSizeMax,
	})
	if err != nil {
		return nil, storeError(err, "create event")
	}

	res := &CreateEventResponse{}
	res.Body.ID = id
	return res, nil
}

type GetEventRequest struct {
	ID string `path:"id" doc:"Event ID"`
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*EventResponse, error) {
	event, err := h.events.GetEventByID(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "load event")
	}
	return &EventResponse{Body: *event}, nil
}

type ListEventsRequest struct{}

type EventListResponse struct {
	Body struct {
		Events []models.Event `json:"events"`
	}
}

// HandleListPublicEvents returns published public events, newest start
// date first. Draft events never appear here.
func (h *EventHandler) HandleListPublicEvents(ctx context.Context, input *ListEventsRequest) (*EventListResponse, error) {
	events, err := h.events.ListPublicEvents(ctx)
	if err != nil {
		return nil, storeError(err, "list events")
	}
	res := &EventListResponse{}
	res.Body.Events = events
	return res, nil
}

type ListMyEventsRequest struct {
	auth.AuthInput
}

func (h *EventHandler) HandleListMyEvents(ctx context.Context, input *ListMyEventsRequest) (*EventListResponse, error) {
	identity, err := h.requireOrganization(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	events, err := h.events.ListOrganizationEvents(ctx, identity.UID)
	if err != nil {
		return nil, storeError(err, "list events")
	}
	res := &EventListResponse{}
	res.Body.Events = events
	return res, nil
}

type UpdateEventRequest struct {
	auth.AuthInput
	ID   string `path:"id" doc:"Event ID"`
	Body struct {
		Title        *string    `json:"title,omitempty"`
		Description  *string    `json:"description,omitempty"`
		StartDate    *time.Time `json:"start_date,omitempty"`
		EndDate      *time.Time `json:"end_date,omitempty"`
		Capacity     *int       `json:"capacity,omitempty"`
		Tags         *string    `json:"tags,omitempty" doc:"Comma-separated tags"`
		IsPublic     *bool      `json:"is_public,omitempty"`
		BannerImage  *string    `json:"banner_image,omitempty"`
		Requirements *string    `json:"requirements,omitempty"`
		Agenda       *string    `json:"agenda,omitempty"`
	}
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventRequest) (*MessageResponse, error) {
	if _, _, err := h.requireEventOwner(ctx, input.Cookie, input.ID); err != nil {
		return nil, err
	}

	err := h.events.UpdateEvent(ctx, input.ID, store.EventUpdate{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		StartDate:    input.Body.StartDate,
		EndDate:      input.Body.EndDate,
		Capacity:     input.Body.Capacity,
		Tags:         input.Body.Tags,
		IsPublic:     input.Body.IsPublic,
		BannerImage:  input.Body.BannerImage,
		Requirements: input.Body.Requirements,
		Agenda:       input.Body.Agenda,
	})
	if err != nil {
		return nil, storeError(err, "update event")
	}

	res := &MessageResponse{}
	res.Body.Message = "Event updated"
	return res, nil
}

type UpdateEventStatusRequest struct {
	auth.AuthInput
	ID   string `path:"id" doc:"Event ID"`
	Body struct {
		Status models.EventStatus `json:"status" enum:"draft,published,ongoing,completed,cancelled" required:"true"`
	}
}

func (h *EventHandler) HandleUpdateEventStatus(ctx context.Context, input *UpdateEventStatusRequest) (*MessageResponse, error) {
	if _, _, err := h.requireEventOwner(ctx, input.Cookie, input.ID); err != nil {
		return nil, err
	}

	if err := h.events.UpdateEventStatus(ctx, input.ID, input.Body.Status); err != nil {
		return nil, storeError(err, "update event status")
	}

	res := &MessageResponse{}
	res.Body.Message = "Event status updated"
	return res, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	ID string `path:"id" doc:"Event ID"`
}

func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*MessageResponse, error) {
	if _, _, err := h.requireEventOwner(ctx, input.Cookie, input.ID); err != nil {
		return nil, err
	}

	if err := h.events.DeleteEvent(ctx, input.ID); err != nil {
		return nil, storeError(err, "delete event")
	}

	res := &MessageResponse{}
	res.Body.Message = "Event deleted"
	return res, nil
}
