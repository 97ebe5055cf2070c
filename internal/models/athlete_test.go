package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/models"
)

func TestAthlete_Age(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	age, ok := models.Athlete{Birthdate: "1990-05-04"}.Age(now)
	require.True(t, ok)
	assert.Equal(t, 36, age)

	_, ok = models.Athlete{Birthdate: "not-a-date"}.Age(now)
	assert.False(t, ok)
}

func TestNewAthleteView_NoAgeWithoutBirthdate(t *testing.T) {
	v := models.NewAthleteView(models.Athlete{ID: "a1"}, time.Now())
	assert.Nil(t, v.Age)
}

func TestMergeUpdate_DoesNotAliasAvatar(t *testing.T) {
	fields := models.AthleteFields{FirstName: "Al", LastName: "Bo", Birthdate: "1990-05-04", Location: "NY"}
	url := "https://cdn.example/avatars/a1.png"

	update := models.MergeUpdate(fields, &url)
	url = "changed"

	require.NotNil(t, update.Avatar)
	assert.Equal(t, "https://cdn.example/avatars/a1.png", *update.Avatar)
	assert.Equal(t, fields, update.AthleteFields)
}

func TestMergeUpdate_KeepsAvatarWhenNoneResolved(t *testing.T) {
	update := models.MergeUpdate(models.AthleteFields{FirstName: "Al"}, nil)
	assert.Nil(t, update.Avatar)
}

func TestValidationResult(t *testing.T) {
	assert.True(t, models.Accepted(models.AthleteFields{}).Accepted())
	assert.False(t, models.Rejected(map[string]string{"location": "x"}).Accepted())
}
