package user

import (
	"context"

	"artportfolio/internal/domain"
)

type userRepository interface {
	ListAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type artworkLister interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Artwork, error)
}

// Profile is the public view of a user with the artworks they created.
type Profile struct {
	ID       int64                   `json:"id"`
	Name     string                  `json:"name"`
	Artworks []domain.ArtworkSummary `json:"artworks"`
}

// Account is a user as listed to admins. The hash is never exposed.
type Account struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
}

type Service struct {
	users    userRepository
	artworks artworkLister
}

func NewService(users userRepository, artworks artworkLister) *Service {
	return &Service{users: users, artworks: artworks}
}

func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	artworks, err := s.artworks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ArtworkSummary, 0, len(artworks))
	for _, a := range artworks {
		summaries = append(summaries, a.Summary())
	}
	return &Profile{ID: u.ID, Name: u.Name, Artworks: summaries}, nil
}

func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(users))
	for _, u := range users {
		out = append(out, Account{ID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role()})
	}
	return out, nil
}
