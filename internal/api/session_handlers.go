package api

import (
	"net/http"

	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/models"
)

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	writeJSON(w, r, http.StatusOK, sessionResponse{
		Authenticated: session.Authenticated(),
		User:          session.User,
	})
}
