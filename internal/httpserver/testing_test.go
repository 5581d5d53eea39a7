package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
	"shopverse/internal/metrics"
	cartrepo "shopverse/internal/repository/cart"
	identityrepo "shopverse/internal/repository/identity"
	orderrepo "shopverse/internal/repository/order"
	productrepo "shopverse/internal/repository/product"
	sessionrepo "shopverse/internal/repository/session"
	"shopverse/internal/seed"
	"shopverse/internal/service/account"
	cartsvc "shopverse/internal/service/cart"
	"shopverse/internal/service/catalog"
	ordersvc "shopverse/internal/service/order"
	"shopverse/internal/store"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestRouter wires real services over a seeded in-memory store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	s := store.New(kv.NewMemory(), nil)
	if err := s.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}
	users := identityrepo.NewKV(s, domain.RoleUser, nil)
	admins := identityrepo.NewKV(s, domain.RoleAdmin, nil)
	products := productrepo.NewKV(s, nil)
	orders := orderrepo.NewKV(s, nil)
	if err := seed.Apply(ctx, users, admins, products, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ids := domain.NewIDGenerator()
	router, err := buildRouter(logDiscard(), Deps{
		Store:      s,
		AccountSvc: account.New(users, admins, sessionrepo.NewKV(s), ids, nil),
		CatalogSvc: catalog.New(products, ids, catalog.Policy{}, nil),
		CartSvc:    cartsvc.New(cartrepo.NewKV(s), products, orders, ids, cartsvc.Policy{}, nil, nil),
		OrderSvc:   ordersvc.New(orders, nil),
		Metrics:    metrics.New(),
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v body=%s", v, err, rec.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d body=%s", want, rec.Code, rec.Body.String())
	}
}

func loginAs(t *testing.T, router http.Handler, role domain.Role, email, password string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password, "role": string(role)})
	expectStatus(t, rec, http.StatusOK)
}
