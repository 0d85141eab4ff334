// Package utils provides token signing and password hashing helpers.
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when token signing is attempted without a
// configured secret. This is a server misconfiguration, not a bad
// credential, and callers must not map it to an auth failure.
var ErrNoSecret = errors.New("jwt secret is empty")

// sessionClaims is the token payload: identity only. Role is deliberately
// absent; authorization-relevant fields are re-read from the store on every
// request so a role change takes effect immediately.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// NewSessionToken signs an HS256 JWT for the user with the given lifetime
// in days. Claims are subject (user id), issued-at and expiry.
func NewSessionToken(secret string, userID uint64, ttlDays int) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlDays) * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the user id
// the token was issued for. Any failure collapses into a single error; the
// caller reports it generically.
func ParseSessionToken(secret, raw string) (uint64, error) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return 0, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid subject claim")
	}
	return id, nil
}
