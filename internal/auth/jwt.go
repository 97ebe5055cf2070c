package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
)

// Claims are the access token claims issued by the auth provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 access tokens signed with a shared secret.
type JWTVerifier struct {
	secret   []byte
	audience string
}

type JWTOption func(*JWTVerifier)

// WithAudience requires tokens to name aud in their audience claim.
func WithAudience(aud string) JWTOption {
	return func(v *JWTVerifier) {
		v.audience = aud
	}
}

func NewJWTVerifier(secret string, opts ...JWTOption) *JWTVerifier {
	v := &JWTVerifier{secret: []byte(secret)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *JWTVerifier) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")
	if token == "" {
		return nil, nil
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		log.Debug("rejected token: %v", err)
		return nil, nil
	}
	if !parsed.Valid || claims.Subject == "" {
		log.Debug("token has no subject")
		return nil, nil
	}

	return &models.User{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

var _ Verifier = (*JWTVerifier)(nil)
