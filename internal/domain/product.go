package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted collections carry prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	AdminID     int64           `json:"adminId"`
	AdminName   string          `json:"adminName"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
}

// Validate checks the record schema of a product.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

// Matches reports whether the product passes every set field of f.
func (p Product) Matches(f ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Owner != nil && p.AdminID != *f.Owner {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// ProductFilter narrows a product listing. Zero fields match everything.
type ProductFilter struct {
	Category string
	Search   string
	// Owner limits the listing to one admin's products when set. Any admin
	// id is valid, zero included.
	Owner *int64
}

// OwnedBy returns a filter matching only products owned by adminID.
func OwnedBy(adminID int64) ProductFilter {
	return ProductFilter{Owner: &adminID}
}

// AdminStats summarises the products owned by one admin.
type AdminStats struct {
	TotalProducts int             `json:"totalProducts"`
	TotalStock    int             `json:"totalStock"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}
