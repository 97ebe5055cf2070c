package api

import (
	"net/http"

	"github.com/vytor/roster/internal/errors"
	"github.com/vytor/roster/internal/logger"
)

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error    errorDetail `json:"error"`
	Redirect string      `json:"redirect,omitempty"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, err, "")
}

// writeError renders err as JSON. A non-empty redirect tells the client
// which view to move to despite the failure.
func writeError(w http.ResponseWriter, r *http.Request, err error, redirect string) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorResponse{
		Error: errorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		},
		Redirect: redirect,
	})
}
