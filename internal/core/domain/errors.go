package domain

import "errors"

var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrAccessDenied       = errors.New("access denied")
	ErrNoMemberAccount    = errors.New("no member account linked")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMalformedResponse  = errors.New("malformed backend response")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries a user-facing message for a local validation failure.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError.
func Invalid(msg string) error { return &ValidationError{Message: msg} }
