package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/roster/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) RunSync(ctx context.Context, athleteID string, requestedBy models.User) error {
	args := m.Called(ctx, athleteID, requestedBy)
	return args.Error(0)
}
