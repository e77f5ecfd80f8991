package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is what callers see for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	ErrBadCredentials = fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)
)
