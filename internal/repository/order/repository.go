package order

import (
	"context"

	"shopverse/internal/domain"
)

// BuildFunc turns the cart and catalog as read into the order to append. A
// non-nil products result replaces the catalog in the same commit.
type BuildFunc func(cart []domain.CartItem, products []domain.Product) (domain.Order, []domain.Product, error)

type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	// PlaceFromCart appends the built order and empties the cart under
	// cartKey as one commit: both happen or neither does.
	PlaceFromCart(ctx context.Context, cartKey string, build BuildFunc) (*domain.Order, error)
}
