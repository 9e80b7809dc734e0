// Package common defines shared constants and sentinel errors used across
// the server, the HTTP layer and the CLI client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors for malformed or missing input.
	ErrValidation = errors.New("validation error")

	// Credential errors.
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors: no token presented vs. token present but rejected.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")

	// Registration errors.
	ErrAlreadyRegistered = errors.New("already registered")
)
