package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken(testSecret, 42, 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestSessionTokenExpiryWindow(t *testing.T) {
	token, err := NewSessionToken(testSecret, 1, 30)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 30*24*time.Hour, window)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken(testSecret, 7, 1)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	// Negative TTL produces a token that is already expired; a well-formed
	// but stale token must be rejected.
	token, err := NewSessionToken(testSecret, 3, -1)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, token)
	assert.Error(t, err)
}

func TestSessionTokenEmptySecret(t *testing.T) {
	_, err := NewSessionToken("", 7, 30)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not-a-token")
	assert.Error(t, err)
}

func TestSessionTokenUnexpectedAlg(t *testing.T) {
	// An unsigned token must not pass even with a matching payload.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, raw)
	assert.Error(t, err)
}
