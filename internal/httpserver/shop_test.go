package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"shopverse/internal/domain"
)

func TestProductHandlers(t *testing.T) {
	router := newTestRouter(t)

	all := decode[[]domain.Product](t, do(t, router, http.MethodGet, "/api/products", nil))
	if len(all) != 8 {
		t.Fatalf("expected 8 seeded products, got %d", len(all))
	}

	pottery := decode[[]domain.Product](t, do(t, router, http.MethodGet, "/api/products?category=Pottery&search=blue", nil))
	if len(pottery) != 1 || pottery[0].ID != 3004 {
		t.Fatalf("unexpected filter result: %+v", pottery)
	}
	if got := decode[[]domain.Product](t, do(t, router, http.MethodGet, "/api/products?category=all", nil)); len(got) != 8 {
		t.Fatalf("category=all should not filter, got %d", len(got))
	}

	cats := decode[[]string](t, do(t, router, http.MethodGet, "/api/categories", nil))
	if fmt.Sprint(cats) != "[Crafts Furniture Jewelry Pottery Textiles]" {
		t.Fatalf("unexpected categories: %v", cats)
	}

	p := decode[domain.Product](t, do(t, router, http.MethodGet, "/api/products/3002", nil))
	if p.Name != "Ajrak Pattern Rug" || !p.Price.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected product: %+v", p)
	}
	expectStatus(t, do(t, router, http.MethodGet, "/api/products/1", nil), http.StatusNotFound)
	expectStatus(t, do(t, router, http.MethodGet, "/api/products/abc", nil), http.StatusBadRequest)
}

func TestAdminHandlers(t *testing.T) {
	router := newTestRouter(t)
	loginAs(t, router, domain.RoleAdmin, "admin@shopverse.com", "admin123")

	rec := do(t, router, http.MethodPost, "/api/admin/products", map[string]any{
		"name": "Sindhi Cap", "price": 300, "category": "Textiles", "stock": 4,
	})
	expectStatus(t, rec, http.StatusCreated)
	created := decode[domain.Product](t, rec)
	if created.AdminID != 1001 || created.AdminName != "Artisan Admin" {
		t.Fatalf("expected acting admin as owner: %+v", created)
	}

	expectStatus(t, do(t, router, http.MethodPost, "/api/admin/products", map[string]any{"name": "", "price": 1}), http.StatusBadRequest)

	rec = do(t, router, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d", created.ID), map[string]any{"stock": 10})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[domain.Product](t, rec); got.Stock != 10 || got.Name != "Sindhi Cap" {
		t.Fatalf("unexpected patched product: %+v", got)
	}
	expectStatus(t, do(t, router, http.MethodPatch, "/api/admin/products/1", map[string]any{"stock": 1}), http.StatusNotFound)

	mine := decode[[]domain.Product](t, do(t, router, http.MethodGet, "/api/admin/products", nil))
	if len(mine) != 9 {
		t.Fatalf("expected 9 products for admin 1001, got %d", len(mine))
	}

	stats := decode[domain.AdminStats](t, do(t, router, http.MethodGet, "/api/admin/stats", nil))
	if stats.TotalProducts != 9 || stats.TotalStock != 465 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	expectStatus(t, do(t, router, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", created.ID), nil), http.StatusNoContent)
	expectStatus(t, do(t, router, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", created.ID), nil), http.StatusNoContent)
	expectStatus(t, do(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil), http.StatusNotFound)
}

func TestCartAndCheckoutHandlers(t *testing.T) {
	router := newTestRouter(t)
	loginAs(t, router, domain.RoleUser, "user@shopverse.com", "user123")

	rec := do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": 3001})
	expectStatus(t, rec, http.StatusOK)
	cart := decode[domain.Cart](t, rec)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": 3001, "quantity": 50})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if got := decode[errorResponse](t, rec).Code; got != "insufficient_stock" {
		t.Fatalf("expected insufficient_stock, got %q", got)
	}
	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": 3001, "quantity": int64(math.MaxInt64)})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectStatus(t, do(t, router, http.MethodPatch, "/api/cart/items/3001", map[string]any{"delta": int64(math.MaxInt64)}), http.StatusUnprocessableEntity)

	expectStatus(t, do(t, router, http.MethodPatch, "/api/cart/items/3001", map[string]any{"delta": 50}), http.StatusUnprocessableEntity)
	rec = do(t, router, http.MethodPatch, "/api/cart/items/3001", map[string]any{"delta": -1})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[domain.Cart](t, rec); got.Items[0].Quantity != 1 {
		t.Fatalf("decrement to zero must leave the line: %+v", got)
	}

	cart = decode[domain.Cart](t, do(t, router, http.MethodGet, "/api/cart", nil))
	if !cart.Totals.Subtotal.Equal(decimal.NewFromInt(450)) || !cart.Totals.Total.Equal(decimal.NewFromInt(531)) {
		t.Fatalf("unexpected totals: %+v", cart.Totals)
	}

	ship := domain.ShippingDetails{
		Name: "John Doe", Email: "user@shopverse.com", Phone: "0300", Address: "1 Clay Street",
		City: "Multan", State: "Punjab", Zip: "60000", CardNumber: "4111 1111 1111 9876",
	}
	rec = do(t, router, http.MethodPost, "/api/checkout", ship)
	expectStatus(t, rec, http.StatusCreated)
	order := decode[domain.Order](t, rec)
	if !order.Delivery.Equal(decimal.NewFromInt(50)) || !order.Total.Equal(decimal.NewFromInt(581)) || order.CardLast4 != "9876" {
		t.Fatalf("unexpected order: %+v", order)
	}

	cart = decode[domain.Cart](t, do(t, router, http.MethodGet, "/api/cart", nil))
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout: %+v", cart)
	}
	rec = do(t, router, http.MethodPost, "/api/checkout", ship)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if got := decode[errorResponse](t, rec).Code; got != "empty_cart" {
		t.Fatalf("expected empty_cart, got %q", got)
	}

	history := decode[[]domain.Order](t, do(t, router, http.MethodGet, "/api/orders", nil))
	if len(history) != 1 || history[0].ID != order.ID {
		t.Fatalf("unexpected history: %+v", history)
	}
	got := decode[domain.Order](t, do(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil))
	if got.ID != order.ID || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	expectStatus(t, do(t, router, http.MethodGet, "/api/orders/1", nil), http.StatusNotFound)

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": 3002, "quantity": 1})
	expectStatus(t, rec, http.StatusOK)
	rec = do(t, router, http.MethodDelete, "/api/cart/items/3002", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[domain.Cart](t, rec); len(got.Items) != 0 {
		t.Fatalf("expected empty cart after removal: %+v", got)
	}
}
