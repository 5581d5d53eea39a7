package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopverse/internal/domain"
	"shopverse/internal/metrics"
	"shopverse/internal/service/account"
	"shopverse/internal/service/catalog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, role domain.Role, email, password string) (*domain.Identity, error)
	ClearSession(ctx context.Context, role domain.Role) error
	CurrentSession(ctx context.Context, role domain.Role) (*domain.Identity, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, admin domain.Admin, in catalog.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, admin domain.Admin, id int64, patch catalog.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, admin domain.Admin, id int64) error
	AdminProducts(ctx context.Context, admin domain.Admin) ([]domain.Product, error)
	AdminStats(ctx context.Context, admin domain.Admin) (domain.AdminStats, error)
}

type CartService interface {
	Cart(ctx context.Context, shopper *domain.User) (*domain.Cart, error)
	AddToCart(ctx context.Context, shopper *domain.User, productID int64, quantity int) (*domain.Cart, error)
	UpdateCartQuantity(ctx context.Context, shopper *domain.User, productID int64, delta int) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, shopper *domain.User, productID int64) (*domain.Cart, error)
	Checkout(ctx context.Context, shopper *domain.User, ship domain.ShippingDetails) (*domain.Order, error)
}

type OrderService interface {
	OrderHistory(ctx context.Context, shopper *domain.User) ([]domain.Order, error)
	GetOrder(ctx context.Context, shopper *domain.User, id int64) (*domain.Order, error)
}

// Deps are the services the router dispatches to. Metrics is optional.
type Deps struct {
	Store       Pinger
	AccountSvc  AccountService
	CatalogSvc  CatalogService
	CartSvc     CartService
	OrderSvc    OrderService
	Metrics     *metrics.Metrics
	CORSOrigins []string
}

type handlers struct {
	logger   *log.Logger
	accounts AccountService
	catalog  CatalogService
	cart     CartService
	orders   OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.AccountSvc == nil || deps.CatalogSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: account, catalog, cart and order services are required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.CORSOrigins))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	h := &handlers{
		logger:   logger,
		accounts: deps.AccountSvc,
		catalog:  deps.CatalogSvc,
		cart:     deps.CartSvc,
		orders:   deps.OrderSvc,
	}

	api := router.Group("/api")
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/session", h.session)

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/categories", h.categories)

	admin := api.Group("/admin", requireSession(h, domain.RoleAdmin))
	admin.GET("/products", h.adminProducts)
	admin.POST("/products", h.createProduct)
	admin.PATCH("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.GET("/stats", h.adminStats)

	shopper := api.Group("", requireSession(h, domain.RoleUser))
	shopper.GET("/cart", h.getCart)
	shopper.POST("/cart/items", h.addToCart)
	shopper.PATCH("/cart/items/:productId", h.updateCartItem)
	shopper.DELETE("/cart/items/:productId", h.removeCartItem)
	shopper.POST("/checkout", h.checkout)
	shopper.GET("/orders", h.orderHistory)
	shopper.GET("/orders/:id", h.getOrder)

	return router, nil
}

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestIDMiddleware keeps an incoming X-Request-ID or mints a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func sessionKey(role domain.Role) string {
	return "session_" + string(role)
}

// requireSession loads the role's session marker and rejects the request
// with 401 when nobody is logged in.
func requireSession(h *handlers, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := h.accounts.CurrentSession(c.Request.Context(), role)
		if err != nil {
			h.fail(c, "session", err)
			return
		}
		if identity == nil {
			h.fail(c, "session", domain.ErrUnauthenticated)
			return
		}
		c.Set(sessionKey(role), identity)
		c.Next()
	}
}

func sessionOf(c *gin.Context, role domain.Role) *domain.Identity {
	v, ok := c.Get(sessionKey(role))
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}
