package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUploader is a mock implementation of avatar.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, athleteID string, data []byte, extension string) (string, error) {
	args := m.Called(ctx, athleteID, data, extension)
	return args.String(0), args.Error(1)
}
