package product

import (
	"context"

	"shopverse/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Update applies fn to the stored product with id and saves the result.
	Update(ctx context.Context, id int64, fn func(*domain.Product) error) (*domain.Product, error)
	// Delete reports whether a product was removed; a missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
	// Upsert inserts p or replaces the product with the same id.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	// ReplaceAll overwrites the whole catalog with products.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}
