package product

import (
	"context"
	"fmt"
	"io"
	"log"

	"shopverse/internal/domain"
	"shopverse/internal/store"
)

type kvRepo struct {
	store  *store.Store
	logger *log.Logger
}

func NewKV(s *store.Store, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &kvRepo{store: s, logger: logger}
}

func (r *kvRepo) List(ctx context.Context) ([]domain.Product, error) {
	c, err := store.Load[domain.Product](ctx, r.store, store.KeyProducts)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(c.Records))
	return c.Records, nil
}

func (r *kvRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		p := all[i]
		return &p, nil
	}
	r.logger.Printf("product repo: get id=%d not found", id)
	return nil, domain.ErrNotFound
}

func (r *kvRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	_, err := store.Update(ctx, r.store, store.KeyProducts, func(all []domain.Product) ([]domain.Product, error) {
		if indexOf(all, p.ID) >= 0 {
			return nil, fmt.Errorf("%w: product id %d already used", domain.ErrConflict, p.ID)
		}
		return append(all, p), nil
	})
	if err != nil {
		r.logger.Printf("product repo: create id=%d error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%d admin_id=%d", p.ID, p.AdminID)
	return &p, nil
}

func (r *kvRepo) Update(ctx context.Context, id int64, fn func(*domain.Product) error) (*domain.Product, error) {
	var updated domain.Product
	_, err := store.Update(ctx, r.store, store.KeyProducts, func(all []domain.Product) ([]domain.Product, error) {
		i := indexOf(all, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		p := all[i]
		if err := fn(&p); err != nil {
			return nil, err
		}
		p.ID = id
		all[i] = p
		updated = p
		return all, nil
	})
	if err != nil {
		r.logger.Printf("product repo: update id=%d error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%d", id)
	return &updated, nil
}

func (r *kvRepo) Delete(ctx context.Context, id int64) (bool, error) {
	c, err := store.Load[domain.Product](ctx, r.store, store.KeyProducts)
	if err != nil {
		return false, err
	}
	i := indexOf(c.Records, id)
	if i < 0 {
		return false, nil
	}
	kept := append(c.Records[:i:i], c.Records[i+1:]...)
	w, err := c.Stage(kept)
	if err != nil {
		return false, err
	}
	if err := r.store.Commit(ctx, w); err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return false, err
	}
	r.logger.Printf("product repo: deleted id=%d", id)
	return true, nil
}

func (r *kvRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	_, err := store.Update(ctx, r.store, store.KeyProducts, func(all []domain.Product) ([]domain.Product, error) {
		if i := indexOf(all, p.ID); i >= 0 {
			all[i] = p
			return all, nil
		}
		return append(all, p), nil
	})
	if err != nil {
		r.logger.Printf("product repo: upsert id=%d error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%d", p.ID)
	return &p, nil
}

func (r *kvRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	_, err := store.Update(ctx, r.store, store.KeyProducts, func([]domain.Product) ([]domain.Product, error) {
		return products, nil
	})
	if err != nil {
		r.logger.Printf("product repo: replace all count=%d error=%v", len(products), err)
		return err
	}
	r.logger.Printf("product repo: replaced catalog count=%d", len(products))
	return nil
}

func indexOf(all []domain.Product, id int64) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
