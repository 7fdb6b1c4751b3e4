// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")

	// Auth errors (invalid, tampered or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Blob storage errors.
	ErrStorage = errors.New("storage error")
)
