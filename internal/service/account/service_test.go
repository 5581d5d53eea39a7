package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
	identityrepo "shopverse/internal/repository/identity"
	sessionrepo "shopverse/internal/repository/session"
	"shopverse/internal/store"
)

func newService(t *testing.T) (*Service, identityrepo.Repository) {
	t.Helper()
	s := store.New(kv.NewMemory(), nil)
	users := identityrepo.NewKV(s, domain.RoleUser, nil)
	admins := identityrepo.NewKV(s, domain.RoleAdmin, nil)
	_, err := admins.SeedIfEmpty(context.Background(), []domain.Identity{
		{ID: 1001, Name: "Artisan Admin", Email: "admin@shopverse.com", Password: "admin123"},
	})
	require.NoError(t, err)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := domain.NewIDGeneratorWithClock(func() time.Time { return clock })
	return New(users, admins, sessionrepo.NewKV(s), ids, nil), users
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)

	first, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), first.CreatedAt)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "jane@example.com", Password: "pw2"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Name: " ", Email: "x@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, domain.RoleUser, "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	_, err = svc.Authenticate(ctx, domain.RoleUser, "jane@example.com", "Secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, domain.RoleUser, "missing@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// shoppers cannot log in as admins and vice versa
	_, err = svc.Authenticate(ctx, domain.RoleAdmin, "jane@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	admin, err := svc.Authenticate(ctx, domain.RoleAdmin, "admin@shopverse.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), admin.ID)

	_, err = svc.Authenticate(ctx, domain.Role("root"), "admin@shopverse.com", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate_EmailIsExact(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)
	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	for _, email := range []string{" jane@example.com", "jane@example.com ", "Jane@example.com"} {
		_, err = svc.Authenticate(ctx, domain.RoleUser, email, "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "email %q", email)
	}

	padded, err := svc.Register(ctx, RegisterInput{Name: "Pad", Email: " pad@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, " pad@example.com", padded.Email)
	_, err = svc.Authenticate(ctx, domain.RoleUser, "pad@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, domain.RoleUser, " pad@example.com", "pw")
	assert.NoError(t, err)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSessions_IndependentPerRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "Joe", Email: "joe@example.com", Password: "secret"})
	require.NoError(t, err)

	cur, err := svc.CurrentSession(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = svc.Login(ctx, domain.RoleUser, "jane@example.com", "secret")
	require.NoError(t, err)
	_, err = svc.Login(ctx, domain.RoleAdmin, "admin@shopverse.com", "admin123")
	require.NoError(t, err)

	// a second login overwrites the marker
	_, err = svc.Login(ctx, domain.RoleUser, "joe@example.com", "secret")
	require.NoError(t, err)
	cur, err = svc.CurrentSession(ctx, domain.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "Joe", cur.Name)

	// failed login leaves the marker alone
	_, err = svc.Login(ctx, domain.RoleUser, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	cur, err = svc.CurrentSession(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "Joe", cur.Name)

	require.NoError(t, svc.ClearSession(ctx, domain.RoleUser))
	require.NoError(t, svc.ClearSession(ctx, domain.RoleUser))
	cur, err = svc.CurrentSession(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, cur)

	admin, err := svc.CurrentSession(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, int64(1001), admin.ID)
}
