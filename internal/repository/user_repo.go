package repository

import (
	"context"

	"artportfolio/internal/domain"
	"artportfolio/internal/store"
)

type UserRepository struct {
	store store.DocumentStore
	locks *store.Locker
}

func NewUserRepository(s store.DocumentStore, locks *store.Locker) *UserRepository {
	return &UserRepository{store: s, locks: locks}
}

func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return store.ReadCollection[domain.User](ctx, r.store, store.Users)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	users, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// EnsureSeeded writes seeds only when the users collection is empty and
// reports whether it did.
func (r *UserRepository) EnsureSeeded(ctx context.Context, seeds []domain.User) (bool, error) {
	unlock := r.locks.Lock(store.Users)
	defer unlock()

	users, err := store.ReadCollection[domain.User](ctx, r.store, store.Users)
	if err != nil {
		return false, err
	}
	if len(users) > 0 || len(seeds) == 0 {
		return false, nil
	}
	if err := store.WriteCollection(ctx, r.store, store.Users, seeds); err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites the whole collection. Used by the seed tool.
func (r *UserRepository) Replace(ctx context.Context, users []domain.User) error {
	unlock := r.locks.Lock(store.Users)
	defer unlock()
	return store.WriteCollection(ctx, r.store, store.Users, users)
}
