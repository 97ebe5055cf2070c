package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/errors"
)

func TestAppError_WrapsCause(t *testing.T) {
	cause := stderrors.New("bucket unreachable")
	err := errors.NewUploadError(cause)

	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "UPLOAD_FAILED")
	assert.Contains(t, err.Error(), "bucket unreachable")
}

func TestNewFieldErrors_CopiesInput(t *testing.T) {
	fields := map[string]string{"first_name": "too short"}
	err := errors.NewFieldErrors(fields)
	fields["first_name"] = "mutated"

	assert.Equal(t, "too short", err.Fields["first_name"])
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", errors.NewUnauthorizedError("User not found"))

	appErr, ok := errors.AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnauthorized, appErr.Code)
	assert.Equal(t, http.StatusUnauthorized, errors.StatusOf(wrapped))
	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeUnauthorized))
}

func TestStatusOf_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(stderrors.New("boom")))
	assert.False(t, errors.HasCode(stderrors.New("boom"), errors.ErrCodeNotFound))
}
