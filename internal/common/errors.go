// Package common defines shared constants and sentinel errors used across
// authgate components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors (fatal: the process cannot serve authenticated
	// traffic without a signing secret).
	ErrConfiguration = errors.New("server configuration failure")

	// Credential transport errors (client input defects).
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrAuthenticationFailed covers both an unknown email and a wrong
	// secret. The two cases are logged separately server-side but must
	// never be distinguishable by an external caller.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Post-authentication lookup errors.
	ErrUserNotFound = errors.New("user not found")

	// Validation errors (registration input).
	ErrValidation = errors.New("validation error")

	// Server-side conditions.
	ErrInternalState    = errors.New("authentication state missing")
	ErrStoreUnavailable = errors.New("identity store unavailable")
)
