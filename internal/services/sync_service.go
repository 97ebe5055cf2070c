package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/jobs"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
)

// Sync gateway messages.
const (
	MsgAthleteIDRequired = "Athlete ID is required"
	MsgMissingCredential = "Bearer token not found"
	MsgUserNotFound      = "User not found"
	MsgSyncUnavailable   = "Synchronization unavailable"
	msgSyncedWithSuccess = "Athlète %s synchronisé avec succès"
)

// SyncedMessage is the success message for athleteID.
func SyncedMessage(athleteID string) string {
	return fmt.Sprintf(msgSyncedWithSuccess, athleteID)
}

// SyncService authorizes and runs athlete synchronization requests.
type SyncService interface {
	Sync(ctx context.Context, req models.SyncRequest) models.SyncResult
}

type syncService struct {
	verifier auth.Verifier
	queue    jobs.JobQueue
}

// NewSyncService creates a new SyncService
func NewSyncService(verifier auth.Verifier, queue jobs.JobQueue) SyncService {
	return &syncService{verifier: verifier, queue: queue}
}

// Sync checks, in order: athlete id present, credential present, credential
// resolves to a user. The first failing check decides the result.
func (s *syncService) Sync(ctx context.Context, req models.SyncRequest) models.SyncResult {
	log := logger.FromContext(ctx).WithPrefix("sync")

	athleteID := strings.TrimSpace(req.AthleteID)
	if athleteID == "" {
		log.Debug("rejected: no athlete id")
		return models.SyncRejected(models.SyncBadRequest, http.StatusBadRequest, MsgAthleteIDRequired)
	}
	log = log.WithField("athlete_id", athleteID)

	if req.Token == "" {
		log.Debug("rejected: no bearer token")
		return models.SyncRejected(models.SyncUnauthorized, http.StatusUnauthorized, MsgMissingCredential)
	}

	user, err := s.verifier.ResolveUser(ctx, req.Token)
	if err != nil {
		log.Warn("auth verifier failed: %v", err)
	}
	if err != nil || user == nil {
		return models.SyncRejected(models.SyncUnauthorized, http.StatusUnauthorized, MsgUserNotFound)
	}
	log = log.WithField("user_id", user.ID)

	log.Info("starting synchronization")
	if err := s.queue.RunSync(logger.NewContext(ctx, log), athleteID, *user); err != nil {
		log.Warn("synchronization did not complete: %v", err)
		return models.SyncRejected(models.SyncUnavailable, http.StatusServiceUnavailable, MsgSyncUnavailable)
	}

	log.Info("synchronization finished")
	return models.SyncSucceeded(SyncedMessage(athleteID))
}
