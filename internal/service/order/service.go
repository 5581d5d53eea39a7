package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"

	"shopverse/internal/domain"
)

type Service struct {
	repo   orderRepo
	logger *log.Logger
}

type orderRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

func New(repo orderRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// OrderHistory returns the shopper's orders, newest first.
func (s *Service) OrderHistory(ctx context.Context, shopper *domain.User) ([]domain.Order, error) {
	if shopper == nil {
		return nil, domain.ErrUnauthenticated
	}
	orders, err := s.repo.ListByUser(ctx, shopper.ID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

// GetOrder returns one of the shopper's orders. Orders of other users are
// reported as not found.
func (s *Service) GetOrder(ctx context.Context, shopper *domain.User, id int64) (*domain.Order, error) {
	if shopper == nil {
		return nil, domain.ErrUnauthenticated
	}
	orders, err := s.repo.ListByUser(ctx, shopper.ID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
}
