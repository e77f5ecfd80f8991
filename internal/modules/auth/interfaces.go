package auth

import (
	"context"

	"artportfolio/internal/domain"
)

// UserReader is the read-only user lookup the verifier needs.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type jwtService interface {
	GenerateToken(identity domain.Identity) (string, error)
}
