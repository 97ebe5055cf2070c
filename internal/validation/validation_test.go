package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/validation"
)

func validDraft() models.EditDraft {
	return models.EditDraft{
		FirstName: "Al",
		LastName:  "Bo",
		Birthdate: "1990-05-04",
		Location:  "NY",
	}
}

func TestValidate_AcceptsMinimalDraft(t *testing.T) {
	result := validation.Validate(validDraft())

	require.True(t, result.Accepted())
	assert.Empty(t, result.Errors)
	assert.Equal(t, models.AthleteFields{
		FirstName: "Al",
		LastName:  "Bo",
		Birthdate: "1990-05-04",
		Location:  "NY",
	}, *result.Record)
}

func TestValidate_ShortFieldRejectedAlone(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.EditDraft)
		field   string
		message string
	}{
		{
			name:    "first name",
			mutate:  func(d *models.EditDraft) { d.FirstName = "A" },
			field:   validation.FieldFirstName,
			message: validation.MsgNameTooShort,
		},
		{
			name:    "last name empty",
			mutate:  func(d *models.EditDraft) { d.LastName = "" },
			field:   validation.FieldLastName,
			message: validation.MsgNameTooShort,
		},
		{
			name:    "location",
			mutate:  func(d *models.EditDraft) { d.Location = "X" },
			field:   validation.FieldLocation,
			message: validation.MsgLocationTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			result := validation.Validate(draft)

			assert.False(t, result.Accepted())
			assert.Nil(t, result.Record)
			assert.Equal(t, map[string]string{tt.field: tt.message}, result.Errors)
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	result := validation.Validate(models.EditDraft{
		FirstName: "A",
		LastName:  "B",
		Birthdate: "not-a-date",
		Location:  "",
	})

	assert.False(t, result.Accepted())
	assert.Len(t, result.Errors, 4)
	assert.Equal(t, validation.MsgInvalidDate, result.Errors[validation.FieldBirthdate])
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	draft := validDraft()
	draft.FirstName = "Éa"
	draft.Location = "Å"

	result := validation.Validate(draft)

	assert.NotContains(t, result.Errors, validation.FieldFirstName)
	assert.Contains(t, result.Errors, validation.FieldLocation)
}

func TestValidate_Birthdate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{in: "1990-05-04", valid: true, want: "1990-05-04"},
		{in: "1990-05-04T10:30:00Z", valid: true, want: "1990-05-04"},
		{in: " 2001-12-31 ", valid: true, want: "2001-12-31"},
		{in: "not-a-date"},
		{in: "1990-02-30"},
		{in: "1990-13-01"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			draft := validDraft()
			draft.Birthdate = tt.in

			result := validation.Validate(draft)

			if !tt.valid {
				assert.Equal(t, validation.MsgInvalidDate, result.Errors[validation.FieldBirthdate])
				return
			}
			assert.NotContains(t, result.Errors, validation.FieldBirthdate)
			require.NotNil(t, result.Record)
			assert.Equal(t, tt.want, result.Record.Birthdate)
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	draft := validDraft()
	draft.FirstName = "A"

	assert.Equal(t, validation.Validate(draft), validation.Validate(draft))
}
