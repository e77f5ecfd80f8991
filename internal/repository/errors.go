package repository

import "errors"

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError is returned for bad input. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
