package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Headers a browser client sends to the sync endpoint.
var corsAllowedHeaders = []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/session", s.handleSession)
		r.Get("/athletes", s.handleListAthletes)
		r.Get("/athletes/{id}", s.handleGetAthlete)
		r.With(requireSession).Put("/athletes/{id}", s.handleEditAthlete)
	})

	r.Options("/functions/v1/sync-athlete", s.handleSyncPreflight)
	r.Post("/functions/v1/sync-athlete", s.handleSyncAthlete)
	return r
}
