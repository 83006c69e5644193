package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	u, err := r.Create(ctx, &models.User{UserName: "alice", Email: "A@X.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)

	byEmail, err := r.GetUserByLogin(ctx, "a@X.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "h", byEmail.PasswordHash)

	byName, err := r.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	_, err = r.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetUserByLogin(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Create(ctx, &models.User{UserName: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{UserName: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	_, err = r.Create(ctx, &models.User{UserName: "bob", Email: "A@x.COM"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	exists, err := r.ExistsByUsernameOrEmail(ctx, "carol", "A@X.COM")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = r.ExistsByUsernameOrEmail(ctx, "carol", "c@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepository_LoginPrefersEmailMatch(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	weird, err := r.Create(ctx, &models.User{UserName: "b@x.com", Email: "w@x.com"})
	require.NoError(t, err)
	bob, err := r.Create(ctx, &models.User{UserName: "bob", Email: "b@x.com"})
	require.NoError(t, err)

	got, err := r.GetUserByLogin(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
	assert.NotEqual(t, weird.ID, got.ID)
}
