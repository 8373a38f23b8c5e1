package models

import "errors"

// Domain specific errors for the trip-planning pipeline.
var (
	ErrNotFound          = errors.New("requested item not found")
	ErrGenerationFailed  = errors.New("generation request failed")
	ErrParseFailed       = errors.New("response did not contain the expected shape")
	ErrPersistenceFailed = errors.New("failed to persist record")
	ErrValidation        = errors.New("validation failed")
	ErrBusy              = errors.New("another request is already in flight")
	ErrUnauthenticated   = errors.New("authentication required or invalid credentials")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
)

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthenticated reports whether err wraps ErrUnauthenticated.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

