package domain

import "errors"

// Sentinel errors used across the service and repository layers. Callers
// wrap them with fmt.Errorf("...: %w", err) and the API layer maps them
// to HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrValidation        = errors.New("validation failed")
)
