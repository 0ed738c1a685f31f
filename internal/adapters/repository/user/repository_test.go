package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

func TestRepository_StoresReferenceBlobUnchanged(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	// The blob is opaque here; even a malformed one must round-trip intact.
	for _, blob := range []string{"", "[1, 2, 3]", "{not json"} {
		user := &domain.User{
			ID:       1,
			Username: "alice",
			Password: "secret",
			Email:    "alice@example.com",
			OrderIDs: blob,
		}
		require.NoError(t, repo.Create(ctx, user))

		found, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, blob, found.OrderIDs)

		require.NoError(t, repo.Delete(ctx, 1))
	}
}

func TestRepository_GetReturnsCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{
		ID: 1, Username: "alice", Password: "secret", Email: "a@example.com",
	}))

	found, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	found.Username = "mutated"

	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
}

func TestRepository_DomainErrors(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 42}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: 1, Username: "alice"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: 1, Username: "other"}), domain.ErrAlreadyExists)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: 1, Username: "alice"}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: 2, Username: "bob"}))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
