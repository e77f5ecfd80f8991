package auth

import (
	"context"
	"errors"
	"log"

	"artportfolio/internal/domain"
	"artportfolio/internal/pkg/password"
	"artportfolio/internal/repository"
)

// Service verifies credentials and issues tokens. It never writes users.
type Service struct {
	users  UserReader
	hasher *password.Hasher
	jwt    jwtService
}

func NewService(users UserReader, hasher *password.Hasher, jwt jwtService) *Service {
	return &Service{users: users, hasher: hasher, jwt: jwt}
}

// Verify checks username/password against the stored digest. Both failure
// cases wrap ErrInvalidCredentials.
func (s *Service) Verify(ctx context.Context, username, pass string) (domain.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("login_failed reason=user_not_found username=%q", username)
			return domain.Identity{}, ErrUserNotFound
		}
		return domain.Identity{}, err
	}

	if !s.hasher.Matches(user.Hash, username, pass) {
		log.Printf("login_failed reason=password_mismatch user_id=%d", user.ID)
		return domain.Identity{}, ErrBadCredentials
	}

	return domain.Identity{ID: user.ID, Name: user.Name, Role: user.Role()}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	identity, err := s.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(identity)
	if err != nil {
		return nil, err
	}

	log.Printf("login_ok user_id=%d role=%s", identity.ID, identity.Role)
	return &LoginResult{Token: token, UserID: identity.ID}, nil
}

// SeedUsers builds the default admin (id 1) and user (id 2) accounts.
func SeedUsers(hasher *password.Hasher, adminPassword, userPassword string) []domain.User {
	return []domain.User{
		{ID: domain.AdminUserID, Name: "Admin", Username: "admin", Hash: hasher.Digest("admin", adminPassword)},
		{ID: 2, Name: "User", Username: "user", Hash: hasher.Digest("user", userPassword)},
	}
}
