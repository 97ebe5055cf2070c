// Package validation checks athlete edit drafts against the roster's field rules.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vytor/roster/internal/models"
)

// Field names, as used in rejection maps and request payloads.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthdate = "birthdate"
	FieldLocation  = "location"
	FieldAvatar    = "avatar"
)

// User-facing messages.
const (
	MsgNameTooShort     = "Le nom doit contenir au moins 2 caractères"
	MsgInvalidDate      = "Date invalide"
	MsgLocationTooShort = "La ville doit contenir au moins 2 caractères"
	MsgInvalidImage     = "Le fichier doit être une image"
	MsgImageTooLarge    = "L'image est trop volumineuse"
)

var messages = map[string]string{
	FieldFirstName: MsgNameTooShort,
	FieldLastName:  MsgNameTooShort,
	FieldBirthdate: MsgInvalidDate,
	FieldLocation:  MsgLocationTooShort,
}

// Accepted birthdate layouts. The first is the storage format.
var dateLayouts = []string{models.DateLayout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

type draftRules struct {
	FirstName string `json:"first_name" validate:"min=2"`
	LastName  string `json:"last_name" validate:"min=2"`
	Birthdate string `json:"birthdate" validate:"calendar_date"`
	Location  string `json:"location" validate:"min=2"`
}

// Engine validates drafts. It is safe for concurrent use.
type Engine struct {
	v *validator.Validate
}

func New() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
	return &Engine{v: v}
}

var defaultEngine = New()

// Validate checks draft with the shared engine.
func Validate(draft models.EditDraft) models.ValidationResult {
	return defaultEngine.Validate(draft)
}

// Validate evaluates every rule and collects all violations. Rejection keys
// are the field names. The accepted record carries the birthdate normalized
// to models.DateLayout.
func (e *Engine) Validate(draft models.EditDraft) models.ValidationResult {
	rules := draftRules{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Birthdate: draft.Birthdate,
		Location:  draft.Location,
	}

	if err := e.v.Struct(rules); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// Only reachable on programmer error (non-struct input).
			panic(err)
		}
		rejected := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			rejected[fe.Field()] = messages[fe.Field()]
		}
		return models.Rejected(rejected)
	}

	born, _ := ParseDate(draft.Birthdate)
	return models.Accepted(models.AthleteFields{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Birthdate: born.Format(models.DateLayout),
		Location:  draft.Location,
	})
}

// ParseDate parses s as a real calendar date in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
