package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
	"shopverse/internal/store"
)

func TestKVRepo_RolesAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewKV(store.New(kv.NewMemory(), nil))

	got, err := repo.Get(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, domain.RoleUser, domain.User{ID: 2001, Name: "John Doe"}))
	require.NoError(t, repo.Set(ctx, domain.RoleAdmin, domain.Admin{ID: 1001, Name: "Artisan Admin"}))
	require.NoError(t, repo.Set(ctx, domain.RoleUser, domain.User{ID: 2002, Name: "Jane Roe"}))

	user, err := repo.Get(ctx, domain.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(2002), user.ID, "last login wins")

	require.NoError(t, repo.Clear(ctx, domain.RoleUser))
	require.NoError(t, repo.Clear(ctx, domain.RoleUser))

	user, err = repo.Get(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, user)
	admin, err := repo.Get(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, int64(1001), admin.ID)
}
