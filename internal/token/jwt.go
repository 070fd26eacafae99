// Package token mints and verifies the signed session tokens that prove a
// prior successful authentication. Tokens are stateless: validity is fully
// determined by signature and expiry, so no server-side session store is
// needed and any instance can verify a token minted by another.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// DefaultValidity is how long a freshly minted token stays valid.
const DefaultValidity = 24 * time.Hour

// Claims carries only the registered claims; the subject identity rides in
// the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec mints and verifies HS256-signed session tokens. The signing secret
// is injected once at construction and validated there, not re-checked on
// every call.
type Codec struct {
	secret   []byte
	validity time.Duration
}

// NewCodec returns a Codec signing with the given secret. An empty secret
// is a configuration failure: the process cannot serve authenticated
// traffic without one. A non-positive validity falls back to
// DefaultValidity.
func NewCodec(secret []byte, validity time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrConfiguration)
	}
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Codec{secret: secret, validity: validity}, nil
}

// Mint produces a signed token bound to the given subject id, expiring
// after the configured validity.
func (c *Codec) Mint(subjectID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
	})

	tokenString, err := t.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature integrity and expiry and returns the subject id.
// Expired tokens yield common.ErrTokenExpired; every other failure (bad
// signature, malformed structure, wrong algorithm, missing subject)
// collapses into common.ErrTokenInvalid so callers cannot probe which
// check rejected them.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrTokenInvalid
	}

	if !t.Valid || claims.Subject == "" {
		return "", common.ErrTokenInvalid
	}

	return claims.Subject, nil
}
