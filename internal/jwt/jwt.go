package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token carries no exp claim")

// ExpiresAt reads the exp claim of a backend token without verifying its
// signature. The backend owns the signing key; this side only needs the
// lifetime to size the persistent session.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}

// TTL returns the remaining lifetime of tokenString, or fallback when the
// token is unreadable, has no expiry or is already expired.
func TTL(tokenString string, now time.Time, fallback time.Duration) time.Duration {
	if tokenString == "" {
		return fallback
	}
	exp, err := ExpiresAt(tokenString)
	if err != nil {
		return fallback
	}
	if ttl := exp.Sub(now); ttl > 0 {
		return ttl
	}
	return fallback
}
