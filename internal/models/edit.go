package models

// ImageSelection is a newly picked avatar file.
type ImageSelection struct {
	Filename  string
	Extension string
	Data      []byte
}

// EditDraft is the client-held candidate edit of an athlete.
// Image is nil when the user kept the current avatar.
type EditDraft struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Birthdate string          `json:"birthdate"`
	Location  string          `json:"location"`
	Image     *ImageSelection `json:"-"`
}

// ValidationResult is either accepted (Record set) or rejected (Errors set).
type ValidationResult struct {
	Record *AthleteFields
	Errors map[string]string
}

func Accepted(record AthleteFields) ValidationResult {
	return ValidationResult{Record: &record}
}

func Rejected(errs map[string]string) ValidationResult {
	return ValidationResult{Errors: errs}
}

func (r ValidationResult) Accepted() bool {
	return r.Record != nil && len(r.Errors) == 0
}

type EditStatus string

const (
	EditOK       EditStatus = "ok"
	EditRejected EditStatus = "rejected"
	EditFailed   EditStatus = "failed"
)

// EditOutcome reports a profile edit submission. Redirect is the view the
// caller should move to; empty means stay on the form.
type EditOutcome struct {
	Status   EditStatus
	Athlete  *Athlete
	Errors   map[string]string
	Err      error
	Redirect string
}

// ProfilePath is the read-only profile view of an athlete.
func ProfilePath(athleteID string) string {
	return "/athlete/" + athleteID
}
