package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/roster/internal/models"
)

// MockVerifier is a mock implementation of auth.Verifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
