package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/roster/internal/models"
)

// MockAthleteRepository is a mock implementation of repository.AthleteRepository
type MockAthleteRepository struct {
	mock.Mock
}

func (m *MockAthleteRepository) Get(ctx context.Context, id string) (*models.Athlete, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) List(ctx context.Context) ([]models.Athlete, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) Insert(ctx context.Context, athlete models.Athlete) (*models.Athlete, error) {
	args := m.Called(ctx, athlete)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) Update(ctx context.Context, id string, update models.AthleteUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockAthleteRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
