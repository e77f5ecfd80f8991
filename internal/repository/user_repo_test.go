package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artportfolio/internal/domain"
	"artportfolio/internal/store"
)

func TestUserRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore(), store.NewLocker())
	require.NoError(t, repo.Replace(ctx, []domain.User{
		{ID: 1, Name: "Admin", Username: "admin", Hash: "h1"},
		{ID: 2, Name: "Guest", Username: "user", Hash: "h2"},
	}))

	u, err := repo.GetByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, domain.RoleUser, u.Role())

	u, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role())

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetByID(ctx, 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_EnsureSeededOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore(), store.NewLocker())
	seeds := []domain.User{{ID: 1, Name: "Admin", Username: "admin", Hash: "h"}}

	seeded, err := repo.EnsureSeeded(ctx, seeds)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.EnsureSeeded(ctx, []domain.User{{ID: 9, Username: "other"}})
	require.NoError(t, err)
	assert.False(t, seeded)

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seeds, users)
}
