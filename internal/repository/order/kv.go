package order

import (
	"context"
	"io"
	"log"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
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

func (r *kvRepo) List(ctx context.Context) ([]domain.Order, error) {
	c, err := store.Load[domain.Order](ctx, r.store, store.KeyOrders)
	if err != nil {
		return nil, err
	}
	return c.Records, nil
}

func (r *kvRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *kvRepo) PlaceFromCart(ctx context.Context, cartKey string, build BuildFunc) (*domain.Order, error) {
	cart, err := store.Load[domain.CartItem](ctx, r.store, cartKey)
	if err != nil {
		return nil, err
	}
	products, err := store.Load[domain.Product](ctx, r.store, store.KeyProducts)
	if err != nil {
		return nil, err
	}
	orders, err := store.Load[domain.Order](ctx, r.store, store.KeyOrders)
	if err != nil {
		return nil, err
	}

	order, updatedProducts, err := build(cart.Records, products.Records)
	if err != nil {
		return nil, err
	}

	writes := make([]kv.Write, 0, 3)
	w, err := orders.Stage(append(orders.Records, order))
	if err != nil {
		return nil, err
	}
	writes = append(writes, w)
	if w, err = cart.Stage(nil); err != nil {
		return nil, err
	}
	writes = append(writes, w)
	if updatedProducts != nil {
		if w, err = products.Stage(updatedProducts); err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}

	if err := r.store.Commit(ctx, writes...); err != nil {
		r.logger.Printf("order repo: place cart=%s error=%v", cartKey, err)
		return nil, err
	}
	r.logger.Printf("order repo: placed id=%d user_id=%d lines=%d total=%s", order.ID, order.UserID, len(order.Items), order.Total.StringFixed(2))
	return &order, nil
}
