package cart

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

func (r *kvRepo) Items(ctx context.Context, key string) ([]domain.CartItem, error) {
	c, err := store.Load[domain.CartItem](ctx, r.store, key)
	if err != nil {
		return nil, err
	}
	return c.Records, nil
}

func (r *kvRepo) Update(ctx context.Context, key string, fn func([]domain.CartItem) ([]domain.CartItem, error)) ([]domain.CartItem, error) {
	return store.Update(ctx, r.store, key, fn)
}
