package models

import "time"

// DateLayout is the ISO calendar date format birthdates are stored in.
const DateLayout = "2006-01-02"

// Athlete is a club member as persisted by the record store.
type Athlete struct {
	ID        string    `json:"id" bson:"_id"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Birthdate string    `json:"birthdate" bson:"birthdate"`
	Location  string    `json:"location" bson:"location"`
	Avatar    *string   `json:"avatar" bson:"avatar"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Age returns the athlete's age in calendar years at now.
// ok is false when the birthdate does not parse.
func (a Athlete) Age(now time.Time) (age int, ok bool) {
	born, err := time.Parse(DateLayout, a.Birthdate)
	if err != nil {
		return 0, false
	}
	return now.Year() - born.Year(), true
}

// AthleteView is the read model served by the profile and list endpoints.
type AthleteView struct {
	Athlete
	Age *int `json:"age"`
}

// NewAthleteView attaches the age computed at now.
func NewAthleteView(a Athlete, now time.Time) AthleteView {
	v := AthleteView{Athlete: a}
	if age, ok := a.Age(now); ok {
		v.Age = &age
	}
	return v
}

// AthleteFields is a record that passed validation.
type AthleteFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate"`
	Location  string `json:"location"`
}

// AthleteUpdate is the partial record written by the record store.
// A nil Avatar leaves the stored avatar untouched.
type AthleteUpdate struct {
	AthleteFields
	Avatar *string `json:"avatar,omitempty"`
}

// MergeUpdate builds the record to persist from validated fields and the
// avatar URL resolved by the upload step, if any. Inputs are not modified.
func MergeUpdate(fields AthleteFields, avatarURL *string) AthleteUpdate {
	update := AthleteUpdate{AthleteFields: fields}
	if avatarURL != nil {
		u := *avatarURL
		update.Avatar = &u
	}
	return update
}
