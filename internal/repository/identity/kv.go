package identity

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
	key    string
	role   domain.Role
	logger *log.Logger
}

// NewKV returns a Repository over the users or admins collection.
func NewKV(s *store.Store, role domain.Role, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	key := store.KeyUsers
	if role == domain.RoleAdmin {
		key = store.KeyAdmins
	}
	return &kvRepo{store: s, key: key, role: role, logger: logger}
}

func (r *kvRepo) Create(ctx context.Context, i domain.Identity) (*domain.Identity, error) {
	_, err := store.Update(ctx, r.store, r.key, func(all []domain.Identity) ([]domain.Identity, error) {
		for _, existing := range all {
			if existing.Email == i.Email {
				return nil, domain.ErrEmailTaken
			}
			if existing.ID == i.ID {
				return nil, fmt.Errorf("%w: %s id %d already used", domain.ErrConflict, r.role, i.ID)
			}
		}
		return append(all, i), nil
	})
	if err != nil {
		r.logger.Printf("%s repo: create email=%s error=%v", r.role, i.Email, err)
		return nil, err
	}
	r.logger.Printf("%s repo: created id=%d", r.role, i.ID)
	clone := i
	return &clone, nil
}

func (r *kvRepo) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.find(ctx, func(i domain.Identity) bool { return i.Email == email })
}

func (r *kvRepo) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return r.find(ctx, func(i domain.Identity) bool { return i.ID == id })
}

func (r *kvRepo) List(ctx context.Context) ([]domain.Identity, error) {
	c, err := store.Load[domain.Identity](ctx, r.store, r.key)
	if err != nil {
		return nil, err
	}
	return c.Records, nil
}

func (r *kvRepo) SeedIfEmpty(ctx context.Context, identities []domain.Identity) (bool, error) {
	c, err := store.Load[domain.Identity](ctx, r.store, r.key)
	if err != nil {
		return false, err
	}
	if len(c.Records) > 0 {
		return false, nil
	}
	w, err := c.Stage(identities)
	if err != nil {
		return false, err
	}
	if err := r.store.Commit(ctx, w); err != nil {
		return false, err
	}
	r.logger.Printf("%s repo: seeded count=%d", r.role, len(identities))
	return true, nil
}

func (r *kvRepo) find(ctx context.Context, match func(domain.Identity) bool) (*domain.Identity, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, i := range all {
		if match(i) {
			clone := i
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}
