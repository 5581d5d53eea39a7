package identity

import (
	"context"

	"shopverse/internal/domain"
)

// Repository persists and fetches users or admins, depending on its role.
type Repository interface {
	Create(ctx context.Context, i domain.Identity) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	// SeedIfEmpty stores identities only when the collection has none yet.
	SeedIfEmpty(ctx context.Context, identities []domain.Identity) (bool, error)
}
