package services

import (
	"context"
	"time"

	"github.com/vytor/roster/internal/errors"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
)

// AthleteService serves the roster list and profile views.
type AthleteService interface {
	ListAthletes(ctx context.Context) ([]models.AthleteView, error)
	GetAthlete(ctx context.Context, id string) (*models.AthleteView, error)
}

type athleteService struct {
	athleteRepo repository.AthleteRepository
	now         func() time.Time
}

// NewAthleteService creates a new AthleteService
func NewAthleteService(athleteRepo repository.AthleteRepository) AthleteService {
	return &athleteService{athleteRepo: athleteRepo, now: time.Now}
}

func (s *athleteService) ListAthletes(ctx context.Context) ([]models.AthleteView, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing athletes")

	athletes, err := s.athleteRepo.List(ctx)
	if err != nil {
		log.Error("failed to list athletes: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	views := make([]models.AthleteView, 0, len(athletes))
	for _, a := range athletes {
		views = append(views, models.NewAthleteView(a, now))
	}
	return views, nil
}

func (s *athleteService) GetAthlete(ctx context.Context, id string) (*models.AthleteView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting athlete: id=%s", id)

	athlete, err := s.athleteRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get athlete: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if athlete == nil {
		return nil, errors.NewNotFoundError("athlete", id)
	}

	view := models.NewAthleteView(*athlete, s.now())
	return &view, nil
}
