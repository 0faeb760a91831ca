// Package token issues and verifies signed session tokens.
//
// Tokens are HS256 JWTs carrying the user id in the sub claim, an issued-at
// and expiry timestamp, and a unique jti. The signing secret is provided at
// construction; there is no ambient key material.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ldelaney/authsvc/internal/domain"
)

// DefaultTTL is the validity window for issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// Issuer signs and verifies session tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue creates a signed token bound to the given user id.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		ID:        uuid.NewString(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the user id it was
// issued for. Failures map onto the domain token error taxonomy:
// ErrTokenMalformed for unparseable input, ErrTokenExpired past expiry, and
// ErrTokenInvalid for everything else (bad signature, wrong algorithm,
// unusable subject).
func (i *Issuer) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, domain.ErrTokenExpired
		default:
			return 0, domain.ErrTokenInvalid
		}
	}
	if !tok.Valid {
		return 0, domain.ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrTokenInvalid
	}
	return userID, nil
}
