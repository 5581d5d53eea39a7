package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"shopverse/internal/domain"
	cartrepo "shopverse/internal/repository/cart"
	orderrepo "shopverse/internal/repository/order"
)

// Policy holds cart and checkout rules that are configurable per deployment.
type Policy struct {
	// DecrementStock makes checkout take the ordered quantities off product
	// stock in the same commit that records the order.
	DecrementStock bool
	// PartitionByUser gives every shopper their own cart key instead of the
	// single shared cart.
	PartitionByUser bool
}

// Observer is told about checkout outcomes. It must not block.
type Observer interface {
	OrderPlaced(order domain.Order)
	CartRejected(reason error)
}

type Service struct {
	repo        cartRepo
	productRepo productRepo
	orderRepo   orderRepo
	ids         *domain.IDGenerator
	policy      Policy
	observer    Observer
	logger      *log.Logger
}

type cartRepo interface {
	Items(ctx context.Context, key string) ([]domain.CartItem, error)
	Update(ctx context.Context, key string, fn func([]domain.CartItem) ([]domain.CartItem, error)) ([]domain.CartItem, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type orderRepo interface {
	PlaceFromCart(ctx context.Context, cartKey string, build orderrepo.BuildFunc) (*domain.Order, error)
}

func New(repo cartrepo.Repository, productRepo productRepo, orderRepo orderRepo, ids *domain.IDGenerator, policy Policy, observer Observer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ids == nil {
		ids = domain.NewIDGenerator()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		ids:         ids,
		policy:      policy,
		observer:    observer,
		logger:      logger,
	}
}

// errUnchanged aborts a cart update that would not modify anything.
var errUnchanged = errors.New("cart unchanged")

// Cart returns the shopper's lines with derived totals.
func (s *Service) Cart(ctx context.Context, shopper *domain.User) (*domain.Cart, error) {
	key, err := s.key(shopper)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Items(ctx, key)
	if err != nil {
		return nil, err
	}
	return cartOf(items), nil
}

// CartTotals returns subtotal, tax and total of the shopper's cart.
func (s *Service) CartTotals(ctx context.Context, shopper *domain.User) (domain.Totals, error) {
	c, err := s.Cart(ctx, shopper)
	if err != nil {
		return domain.Totals{}, err
	}
	return c.Totals, nil
}

// AddToCart adds quantity units of a product, merging into an existing line.
// A quantity of 0 adds one unit.
func (s *Service) AddToCart(ctx context.Context, shopper *domain.User, productID int64, quantity int) (*domain.Cart, error) {
	key, err := s.key(shopper)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Update(ctx, key, func(items []domain.CartItem) ([]domain.CartItem, error) {
		if quantity > product.Stock {
			return nil, fmt.Errorf("%w: %s has %d left", domain.ErrInsufficientStock, product.Name, product.Stock)
		}
		i := domain.FindLine(items, productID)
		if i < 0 {
			return append(items, domain.CartItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Image:     product.Image,
				Quantity:  quantity,
			}), nil
		}
		// Compared by subtraction so huge quantities cannot wrap around.
		if quantity > product.Stock-items[i].Quantity {
			return nil, fmt.Errorf("%w: %s has %d left", domain.ErrInsufficientStock, product.Name, product.Stock)
		}
		items[i].Quantity += quantity
		return items, nil
	})
	if err != nil {
		s.reject(err)
		return nil, err
	}
	return cartOf(items), nil
}

// UpdateCartQuantity changes a line's quantity by delta. A result above
// the product's stock fails with ErrStockExceeded; a result of zero or less
// and an unknown line leave the cart as it is.
func (s *Service) UpdateCartQuantity(ctx context.Context, shopper *domain.User, productID int64, delta int) (*domain.Cart, error) {
	key, err := s.key(shopper)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Update(ctx, key, func(items []domain.CartItem) ([]domain.CartItem, error) {
		i := domain.FindLine(items, productID)
		if i < 0 || delta == 0 {
			return nil, errUnchanged
		}
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		current := items[i].Quantity
		if delta > product.Stock-current {
			return nil, fmt.Errorf("%w: %s has %d left", domain.ErrStockExceeded, product.Name, product.Stock)
		}
		if delta <= -current {
			return nil, errUnchanged
		}
		items[i].Quantity = current + delta
		return items, nil
	})
	if errors.Is(err, errUnchanged) {
		return s.Cart(ctx, shopper)
	}
	if err != nil {
		s.reject(err)
		return nil, err
	}
	return cartOf(items), nil
}

// RemoveFromCart drops the line for productID if there is one.
func (s *Service) RemoveFromCart(ctx context.Context, shopper *domain.User, productID int64) (*domain.Cart, error) {
	key, err := s.key(shopper)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Update(ctx, key, func(items []domain.CartItem) ([]domain.CartItem, error) {
		i := domain.FindLine(items, productID)
		if i < 0 {
			return nil, errUnchanged
		}
		return append(items[:i:i], items[i+1:]...), nil
	})
	if errors.Is(err, errUnchanged) {
		return s.Cart(ctx, shopper)
	}
	if err != nil {
		return nil, err
	}
	return cartOf(items), nil
}

// Checkout turns the cart into a confirmed order and empties the cart. The
// order append and the cart clear are committed together.
func (s *Service) Checkout(ctx context.Context, shopper *domain.User, ship domain.ShippingDetails) (*domain.Order, error) {
	key, err := s.key(shopper)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Items(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.reject(domain.ErrEmptyCart)
		return nil, domain.ErrEmptyCart
	}
	if err := ship.Validate(); err != nil {
		return nil, err
	}

	id, at := s.ids.Next(), s.ids.Now()
	order, err := s.orderRepo.PlaceFromCart(ctx, key, func(cart []domain.CartItem, products []domain.Product) (domain.Order, []domain.Product, error) {
		if len(cart) == 0 {
			return domain.Order{}, nil, domain.ErrEmptyCart
		}
		var updated []domain.Product
		if s.policy.DecrementStock {
			var err error
			if updated, err = takeStock(products, cart); err != nil {
				return domain.Order{}, nil, err
			}
		}
		return domain.NewOrder(id, *shopper, ship, cart, at), updated, nil
	})
	if err != nil {
		s.reject(err)
		return nil, err
	}
	s.logger.Printf("cart: checkout user_id=%d order_id=%d total=%s", shopper.ID, order.ID, order.Total.StringFixed(2))
	s.observer.OrderPlaced(*order)
	return order, nil
}

// takeStock returns a copy of products with every cart line's quantity
// deducted from its product.
func takeStock(products []domain.Product, cart []domain.CartItem) ([]domain.Product, error) {
	out := make([]domain.Product, len(products))
	copy(out, products)
	for _, line := range cart {
		found := false
		for i := range out {
			if out[i].ID != line.ProductID {
				continue
			}
			found = true
			if out[i].Stock < line.Quantity {
				return nil, fmt.Errorf("%w: %s has %d left", domain.ErrInsufficientStock, out[i].Name, out[i].Stock)
			}
			out[i].Stock -= line.Quantity
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: product %d is no longer sold", domain.ErrNotFound, line.ProductID)
		}
	}
	return out, nil
}

func (s *Service) key(shopper *domain.User) (string, error) {
	if shopper == nil {
		return "", domain.ErrUnauthenticated
	}
	return cartrepo.Key(shopper.ID, s.policy.PartitionByUser), nil
}

func (s *Service) reject(err error) {
	for _, known := range []error{domain.ErrInsufficientStock, domain.ErrStockExceeded, domain.ErrEmptyCart, domain.ErrConflict} {
		if errors.Is(err, known) {
			s.observer.CartRejected(known)
			return
		}
	}
}

func cartOf(items []domain.CartItem) *domain.Cart {
	if items == nil {
		items = []domain.CartItem{}
	}
	return &domain.Cart{Items: items, Totals: domain.CartTotals(items)}
}

type nopObserver struct{}

func (nopObserver) OrderPlaced(domain.Order) {}
func (nopObserver) CartRejected(error)       {}
