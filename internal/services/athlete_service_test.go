package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/roster/internal/errors"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/testutil/mocks"
)

func fixedClock() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func TestAthleteService_GetAthlete(t *testing.T) {
	repo := new(mocks.MockAthleteRepository)
	svc := &athleteService{athleteRepo: repo, now: fixedClock}

	repo.On("Get", mock.Anything, "a1").Return(&models.Athlete{
		ID: "a1", FirstName: "Léa", LastName: "Martin", Birthdate: "2010-09-30", Location: "Lyon",
	}, nil)

	view, err := svc.GetAthlete(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, view.Age)
	assert.Equal(t, 14, *view.Age)
	assert.Equal(t, "Léa", view.FirstName)
	repo.AssertExpectations(t)
}

func TestAthleteService_GetAthlete_NotFound(t *testing.T) {
	repo := new(mocks.MockAthleteRepository)
	svc := &athleteService{athleteRepo: repo, now: fixedClock}

	repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	view, err := svc.GetAthlete(context.Background(), "missing")
	assert.Nil(t, view)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestAthleteService_ListAthletes(t *testing.T) {
	repo := new(mocks.MockAthleteRepository)
	svc := &athleteService{athleteRepo: repo, now: fixedClock}

	repo.On("List", mock.Anything).Return([]models.Athlete{
		{ID: "a1", Birthdate: "2000-01-01"},
		{ID: "a2", Birthdate: "not a date"},
	}, nil)

	views, err := svc.ListAthletes(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 24, *views[0].Age)
	assert.Nil(t, views[1].Age)
}

func TestAthleteService_ListAthletes_StoreFailure(t *testing.T) {
	repo := new(mocks.MockAthleteRepository)
	svc := NewAthleteService(repo)

	repo.On("List", mock.Anything).Return(nil, stderrors.New("disk gone"))

	_, err := svc.ListAthletes(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}
