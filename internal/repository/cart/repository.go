package cart

import (
	"context"
	"strconv"

	"shopverse/internal/domain"
	"shopverse/internal/store"
)

type Repository interface {
	Items(ctx context.Context, key string) ([]domain.CartItem, error)
	// Update replaces the cart under key with fn's result; on error nothing changes.
	Update(ctx context.Context, key string, fn func([]domain.CartItem) ([]domain.CartItem, error)) ([]domain.CartItem, error)
}

// Key is the storage key of a shopper's cart. Unpartitioned, every shopper
// shares the single "cart" key.
func Key(userID int64, partitioned bool) string {
	if !partitioned {
		return store.KeyCart
	}
	return store.KeyCart + ":" + strconv.FormatInt(userID, 10)
}
