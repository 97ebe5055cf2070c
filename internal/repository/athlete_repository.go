package repository

import (
	"context"
	"errors"

	"github.com/vytor/roster/internal/models"
)

// ErrNotFound is returned by writes addressed to a missing record.
var ErrNotFound = errors.New("record not found")

// AthleteRepository handles athlete data access.
// Get returns (nil, nil) when no athlete has the given id.
type AthleteRepository interface {
	Get(ctx context.Context, id string) (*models.Athlete, error)
	List(ctx context.Context) ([]models.Athlete, error)
	Insert(ctx context.Context, athlete models.Athlete) (*models.Athlete, error)
	Update(ctx context.Context, id string, update models.AthleteUpdate) error
	Ping(ctx context.Context) error
}
