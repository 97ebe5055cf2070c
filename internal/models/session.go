package models

// User is an authenticated caller as resolved by the auth verifier.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session is the request-scoped login state.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"-"`
}

func (s Session) Authenticated() bool {
	return s.User != nil
}
