package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gatherhub/eventhub-api/internal/auth"
	"github.com/gatherhub/eventhub-api/internal/config"
	"github.com/gatherhub/eventhub-api/internal/database"
	"github.com/gatherhub/eventhub-api/internal/handlers"
	"github.com/gatherhub/eventhub-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Stores
	profiles := store.NewProfileStore(db)
	events := store.NewEventStore(db)
	registrations := store.NewRegistrationStore(db)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, profiles)
	eventHandler := handlers.NewEventHandler(events, profiles, authHandler)
	registrationHandler := handlers.NewRegistrationHandler(registrations, events, profiles, authHandler)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, eventHandler, registrationHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
