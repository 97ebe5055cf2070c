// Package auth resolves bearer credentials to users and carries the
// resulting session through request contexts.
package auth

import (
	"context"
	"strings"

	"github.com/vytor/roster/internal/models"
)

// Verifier resolves a bearer token to a user. It returns (nil, nil) when
// the token does not belong to any known user.
type Verifier interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// BearerToken extracts the credential from an Authorization header value.
// It returns "" when the header is absent or carries no token.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying session.
func NewContext(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// FromContext returns the session stored in ctx, or an anonymous session.
func FromContext(ctx context.Context) models.Session {
	if s, ok := ctx.Value(sessionKey{}).(models.Session); ok {
		return s
	}
	return models.Session{}
}
