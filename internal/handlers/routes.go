package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gatherhub/eventhub-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, eventHandler *EventHandler, registrationHandler *RegistrationHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("EventHub API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	cookieAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Auth
	huma.Post(api, "/auth/signup", authHandler.HandleSignUp)
	huma.Post(api, "/auth/signin", authHandler.HandleSignIn)
	huma.Post(api, "/auth/logout", authHandler.HandleLogout)
	huma.Get(api, "/me", authHandler.HandleMe, cookieAuth)

	// Events
	huma.Get(api, "/events", eventHandler.HandleListPublicEvents)
	huma.Get(api, "/events/{id}", eventHandler.HandleGetEvent)
	huma.Post(api, "/events", eventHandler.HandleCreateEvent, cookieAuth)
	huma.Patch(api, "/events/{id}", eventHandler.HandleUpdateEvent, cookieAuth)
	huma.Put(api, "/events/{id}/status", eventHandler.HandleUpdateEventStatus, cookieAuth)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDeleteEvent, cookieAuth)
	huma.Get(api, "/orgs/me/events", eventHandler.HandleListMyEvents, cookieAuth)

	// Registrations
	huma.Post(api, "/events/{id}/registrations", registrationHandler.HandleRegister, cookieAuth)
	huma.Get(api, "/events/{id}/registrations", registrationHandler.HandleListForEvent, cookieAuth)
	huma.Get(api, "/me/registrations", registrationHandler.HandleListMine, cookieAuth)
	huma.Delete(api, "/registrations/{id}", registrationHandler.HandleCancel, cookieAuth)
	huma.Post(api, "/registrations/{id}/checkin", registrationHandler.HandleCheckIn, cookieAuth)
}
