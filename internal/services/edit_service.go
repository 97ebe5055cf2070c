package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vytor/roster/internal/avatar"
	"github.com/vytor/roster/internal/errors"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
	"github.com/vytor/roster/internal/validation"
)

// EditService applies profile edits: validate, upload the new avatar if
// one was picked, then persist. Each step gates the next.
type EditService interface {
	SubmitEdit(ctx context.Context, athleteID string, draft models.EditDraft) models.EditOutcome
}

type editService struct {
	athleteRepo repository.AthleteRepository
	uploader    avatar.Uploader
	validator   *validation.Engine
	failOpen    bool
}

// NewEditService creates a new EditService. With failOpen set, unexpected
// failures still send the caller to the profile view, discarding the draft.
func NewEditService(athleteRepo repository.AthleteRepository, uploader avatar.Uploader, failOpen bool) EditService {
	return &editService{
		athleteRepo: athleteRepo,
		uploader:    uploader,
		validator:   validation.New(),
		failOpen:    failOpen,
	}
}

func (s *editService) SubmitEdit(ctx context.Context, athleteID string, draft models.EditDraft) (outcome models.EditOutcome) {
	log := logger.FromContext(ctx).WithField("athlete_id", athleteID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("edit aborted by panic: %v", rec)
			outcome = s.unexpected(athleteID, fmt.Errorf("panic: %v", rec))
		}
	}()

	if strings.TrimSpace(athleteID) == "" {
		return models.EditOutcome{Status: models.EditFailed, Err: errors.NewBadRequestError("athlete id is required")}
	}

	result := s.validator.Validate(draft)
	if !result.Accepted() {
		log.Debug("draft rejected: %d field errors", len(result.Errors))
		return models.EditOutcome{Status: models.EditRejected, Errors: result.Errors}
	}

	var avatarURL *string
	if draft.Image != nil {
		url, err := s.uploader.Upload(ctx, athleteID, draft.Image.Data, draft.Image.Extension)
		if err != nil {
			log.Warn("avatar upload failed, record left unchanged: %v", err)
			return models.EditOutcome{Status: models.EditFailed, Err: errors.NewUploadError(err)}
		}
		avatarURL = &url
	}

	update := models.MergeUpdate(*result.Record, avatarURL)
	if err := s.athleteRepo.Update(ctx, athleteID, update); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			log.Warn("edit targets a missing athlete")
			return models.EditOutcome{Status: models.EditFailed, Err: errors.NewNotFoundError("athlete", athleteID)}
		}
		log.Error("failed to persist athlete: %v", err)
		return s.unexpected(athleteID, err)
	}
	log.Info("athlete updated (avatar_changed=%t)", avatarURL != nil)

	outcome = models.EditOutcome{Status: models.EditOK, Redirect: models.ProfilePath(athleteID)}
	athlete, err := s.athleteRepo.Get(ctx, athleteID)
	if err != nil {
		log.Warn("athlete saved but reload failed: %v", err)
		return outcome
	}
	outcome.Athlete = athlete
	return outcome
}

func (s *editService) unexpected(athleteID string, err error) models.EditOutcome {
	out := models.EditOutcome{Status: models.EditFailed, Err: errors.NewInternalError(err)}
	if s.failOpen && athleteID != "" {
		out.Redirect = models.ProfilePath(athleteID)
	}
	return out
}
