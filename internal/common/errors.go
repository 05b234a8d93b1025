// Package common defines shared constants and sentinel errors used across
// the calendar server layers. Callers should use errors.Is to match these
// values; lower layers wrap them with fmt.Errorf("...: %w").
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorConflict  = errors.New("already exists")
	ErrorCorrupted = errors.New("storage corrupted")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation   = errors.New("validation error")
	ErrorInvalidRange = errors.New("end must be after start")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
