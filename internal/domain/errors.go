// Package domain holds error values shared across application layers.
// The HTTP middleware maps these sentinels to status codes; services and
// stores wrap them with context instead of writing responses themselves.
package domain

import "errors"

// Sentinel errors recognised across the codebase.
var (
	// ErrValidation indicates caller-supplied input failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller's token is unknown or expired.
	ErrUnauthorized = errors.New("unauthorized")
)
