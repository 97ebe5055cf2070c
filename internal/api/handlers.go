package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/repository"
	"github.com/vytor/roster/internal/services"
)

type Server struct {
	AthleteService services.AthleteService
	EditService    services.EditService
	SyncService    services.SyncService
	Verifier       auth.Verifier
	AthleteRepo    repository.AthleteRepository

	MaxAvatarBytes     int64
	CORSAllowedOrigins []string
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response: %v", err)
	}
}
