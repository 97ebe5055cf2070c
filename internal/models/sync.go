package models

import "net/http"

// SyncRequest asks for one athlete to be synchronized on behalf of the
// holder of Token.
type SyncRequest struct {
	AthleteID string
	Token     string
}

type SyncOutcome string

const (
	SyncOK           SyncOutcome = "ok"
	SyncBadRequest   SyncOutcome = "bad_request"
	SyncUnauthorized SyncOutcome = "unauthorized"
	SyncUnavailable  SyncOutcome = "unavailable"
)

// SyncResult is a terminal gateway outcome with its HTTP status.
type SyncResult struct {
	Outcome SyncOutcome `json:"-"`
	Status  int         `json:"-"`
	Message string      `json:"message"`
}

func SyncSucceeded(message string) SyncResult {
	return SyncResult{Outcome: SyncOK, Status: http.StatusOK, Message: message}
}

func SyncRejected(outcome SyncOutcome, status int, message string) SyncResult {
	return SyncResult{Outcome: outcome, Status: status, Message: message}
}
