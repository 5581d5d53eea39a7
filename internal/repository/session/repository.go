package session

import (
	"context"

	"shopverse/internal/domain"
)

// Repository stores the one current identity per role.
type Repository interface {
	// Get returns nil when nobody is logged in for role.
	Get(ctx context.Context, role domain.Role) (*domain.Identity, error)
	Set(ctx context.Context, role domain.Role, identity domain.Identity) error
	Clear(ctx context.Context, role domain.Role) error
}
