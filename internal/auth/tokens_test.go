package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/stringr/internal/middleware"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)

	signed, err := tokens.Issue("u1", RoleStringer, true)
	require.NoError(t, err)

	id, err := tokens.ParseAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, middleware.Identity{UserID: "u1", Role: RoleStringer, IsAdmin: true}, id)
}

func TestAccessTokenRejections(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	tokens := NewTokens("s3cret", time.Hour)
	tokens.now = func() time.Time { return now }

	signed, err := tokens.Issue("u1", RolePlayer, false)
	require.NoError(t, err)

	other := NewTokens("other", time.Hour)
	_, err = other.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	now = now.Add(2 * time.Hour)
	_, err = tokens.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.ParseAccess(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")

	_, err = tokens.ParseAccess("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenIsSingleUse(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)
	hash := "$2a$10$original"

	reset, err := tokens.IssueReset("u1", hash)
	require.NoError(t, err)

	_, err = tokens.ParseAccess(reset)
	assert.ErrorIs(t, err, ErrInvalidToken, "reset tokens do not authenticate")

	lookup := func(h string) func(string) (string, error) {
		return func(string) (string, error) { return h, nil }
	}
	userID, err := tokens.ParseReset(reset, lookup(hash))
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = tokens.ParseReset(reset, lookup("$2a$10$changed"))
	assert.ErrorIs(t, err, ErrInvalidToken, "password already changed")

	access, err := tokens.Issue("u1", RolePlayer, false)
	require.NoError(t, err)
	_, err = tokens.ParseReset(access, lookup(hash))
	assert.ErrorIs(t, err, ErrInvalidToken)

	boom := errors.New("db down")
	_, err = tokens.ParseReset(reset, func(string) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}
