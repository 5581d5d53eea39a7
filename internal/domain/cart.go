package domain

import "github.com/shopspring/decimal"

// CartItem is one cart line.
type CartItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart is the cart contents together with the derived totals.
type Cart struct {
	Items  []CartItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// FindLine returns the index of the line for productID, or -1.
func FindLine(items []CartItem, productID int64) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// SnapshotItems copies lines so later cart mutations cannot reach the copy.
func SnapshotItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
