package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotInspectable is returned when the token is not a parseable JWT.
var ErrNotInspectable = errors.New("token not inspectable")

// Claims defines a public type used by goQuizClient APIs.
//
// Claims carries the registered claims the client cares about. Zero times
// mean the claim was absent from the token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

var parser = jwt.NewParser()

// Inspect describes the inspect operation and its observable behavior.
//
// Inspect decodes the token without verifying its signature. It never
// accepts or rejects a token on the server's behalf; callers use the result
// only for scheduling renewal.
func Inspect(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrNotInspectable
	}

	var registered jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &registered); err != nil {
		return nil, ErrNotInspectable
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

// ExpiresWithin describes the expireswithin operation and its observable behavior.
//
// ExpiresWithin reports whether the token's expiry falls inside the window
// from now. Opaque tokens and tokens without an exp claim report false: when
// the client cannot see expiry it must not renew proactively.
func ExpiresWithin(raw string, window time.Duration) bool {
	claims, err := Inspect(raw)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(claims.ExpiresAt) <= window
}
