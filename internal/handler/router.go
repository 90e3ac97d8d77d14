package handler

import (
	"net/http"

	"papelog/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"papelog"}`))
	}).Methods("GET")

	// Initialize handlers
	sessionHandler := NewSessionHandler(container.Session, container.Navigation, container.Config, container.Logger)
	sectionHandler := NewSectionHandler(container.Session, container.Logger)
	navigationHandler := NewNavigationHandler(container.Navigation, container.Logger)

	// Session routes
	api.HandleFunc("/session/upload", sessionHandler.Upload).Methods("POST")
	api.HandleFunc("/session", sessionHandler.Status).Methods("GET")
	api.HandleFunc("/session/reset", sessionHandler.Reset).Methods("POST")
	api.HandleFunc("/session/save", sessionHandler.Save).Methods("POST")

	// Section routes
	api.HandleFunc("/sections/summarize_all", sectionHandler.SummarizeAll).Methods("POST")
	api.HandleFunc("/sections/{id}/summarize", sectionHandler.Summarize).Methods("POST")
	api.HandleFunc("/sections/{id}/speak", sectionHandler.Speak).Methods("POST")
	api.HandleFunc("/sections/{id}/audio/release", sectionHandler.ReleaseAudio).Methods("POST")
	api.HandleFunc("/sections/{id}/expanded", sectionHandler.Expand).Methods("PUT")
	api.HandleFunc("/audio/{clipId}", sectionHandler.Audio).Methods("GET")

	// Navigation routes
	api.HandleFunc("/navigation/hash", navigationHandler.Hash).Methods("POST")
	api.HandleFunc("/navigation/back", navigationHandler.Back).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:3000", // Next.js dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
