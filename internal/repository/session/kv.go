package session

import (
	"context"

	"shopverse/internal/domain"
	"shopverse/internal/store"
)

type kvRepo struct {
	store *store.Store
}

func NewKV(s *store.Store) Repository {
	return &kvRepo{store: s}
}

func markerKey(role domain.Role) string {
	if role == domain.RoleAdmin {
		return store.KeyCurrentAdmin
	}
	return store.KeyCurrentUser
}

func (r *kvRepo) Get(ctx context.Context, role domain.Role) (*domain.Identity, error) {
	m, err := store.LoadMarker[domain.Identity](ctx, r.store, markerKey(role))
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

func (r *kvRepo) Set(ctx context.Context, role domain.Role, identity domain.Identity) error {
	return r.write(ctx, role, &identity)
}

func (r *kvRepo) Clear(ctx context.Context, role domain.Role) error {
	return r.write(ctx, role, nil)
}

// write overwrites the marker regardless of who set it: the last login wins.
func (r *kvRepo) write(ctx context.Context, role domain.Role, identity *domain.Identity) error {
	m, err := store.LoadMarker[domain.Identity](ctx, r.store, markerKey(role))
	if err != nil {
		return err
	}
	w, err := m.Stage(identity)
	if err != nil {
		return err
	}
	return r.store.Commit(ctx, w)
}
