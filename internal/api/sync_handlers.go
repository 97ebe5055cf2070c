package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/models"
)

const maxSyncBodyBytes = 64 << 10

// handleSyncPreflight answers OPTIONS requests the CORS middleware lets
// through, i.e. those that are not browser pre-flights.
func (s *Server) handleSyncPreflight(w http.ResponseWriter, r *http.Request) {
	s.setSyncCORSHeaders(w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSyncAthlete(w http.ResponseWriter, r *http.Request) {
	s.setSyncCORSHeaders(w)

	req := models.SyncRequest{
		AthleteID: readSyncAthleteID(w, r),
		Token:     auth.BearerToken(r.Header.Get("Authorization")),
	}
	res := s.SyncService.Sync(r.Context(), req)
	writeJSON(w, r, res.Status, res)
}

// readSyncAthleteID returns the "id" member of the JSON body. Numbers are
// accepted as ids. A missing or unreadable body yields "".
func readSyncAthleteID(w http.ResponseWriter, r *http.Request) string {
	var body struct {
		ID any `json:"id"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return ""
	}
	switch id := body.ID.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	}
	return ""
}

// setSyncCORSHeaders fills in the CORS headers the middleware leaves out
// for requests without an Origin header.
func (s *Server) setSyncCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") == "" && s.allowsAnyOrigin() {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	if h.Get("Access-Control-Allow-Headers") == "" {
		h.Set("Access-Control-Allow-Headers", strings.ToLower(strings.Join(corsAllowedHeaders, ", ")))
	}
}

func (s *Server) allowsAnyOrigin() bool {
	for _, o := range s.CORSAllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
