package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/models"
)

const secret = "test-secret"

func sign(t *testing.T, key string, method jwt.SigningMethod, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func claimsFor(sub string, expiresIn time.Duration) auth.Claims {
	return auth.Claims{
		Email: sub + "@club.example",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestJWTVerifier_ValidToken(t *testing.T) {
	v := auth.NewJWTVerifier(secret, auth.WithAudience("authenticated"))
	token := sign(t, secret, jwt.SigningMethodHS256, claimsFor("user-1", time.Hour))

	user, err := v.ResolveUser(context.Background(), token)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user-1@club.example", user.Email)
	assert.Equal(t, "authenticated", user.Role)
}

func TestJWTVerifier_RejectsUnknownTokens(t *testing.T) {
	v := auth.NewJWTVerifier(secret, auth.WithAudience("authenticated"))

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.jwt",
		"wrong secret":   sign(t, "other-secret", jwt.SigningMethodHS256, claimsFor("user-1", time.Hour)),
		"expired":        sign(t, secret, jwt.SigningMethodHS256, claimsFor("user-1", -time.Minute)),
		"wrong method":   sign(t, secret, jwt.SigningMethodHS512, claimsFor("user-1", time.Hour)),
		"no subject":     sign(t, secret, jwt.SigningMethodHS256, claimsFor("", time.Hour)),
		"wrong audience": sign(t, secret, jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Audience: jwt.ClaimStrings{"anon"}}}),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			user, err := v.ResolveUser(context.Background(), token)
			assert.NoError(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc.def":   "abc.def",
		"bearer abc":       "abc",
		"  Bearer  tok  ":  "tok",
		"Bearer ":          "",
		"Basic dXNlcjpwdw": "",
		"":                 "",
		"abc":              "",
	}
	for header, want := range tests {
		assert.Equal(t, want, auth.BearerToken(header), header)
	}
}

func TestSessionContext(t *testing.T) {
	assert.False(t, auth.FromContext(context.Background()).Authenticated())

	session := models.Session{User: &models.User{ID: "u1"}, Token: "tok"}
	ctx := auth.NewContext(context.Background(), session)

	got := auth.FromContext(ctx)
	assert.True(t, got.Authenticated())
	assert.Equal(t, "u1", got.User.ID)
}
