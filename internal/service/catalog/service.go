package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shopverse/internal/domain"
	productrepo "shopverse/internal/repository/product"
)

// Policy holds catalog rules that are configurable per deployment.
type Policy struct {
	// EnforceOwnership rejects edits of another admin's product with
	// domain.ErrForbidden. Off by default: any admin may edit any product.
	EnforceOwnership bool
}

type Service struct {
	repo   productrepo.Repository
	ids    *domain.IDGenerator
	policy Policy
	logger *log.Logger
}

func New(repo productrepo.Repository, ids *domain.IDGenerator, policy Policy, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ids == nil {
		ids = domain.NewIDGenerator()
	}
	return &Service{repo: repo, ids: ids, policy: policy, logger: logger}
}

// ProductInput holds the fields of the admin product form.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// ProductPatch carries the fields to change; nil fields are left as stored.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Description *string          `json:"description,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

func (p ProductPatch) apply(dst *domain.Product) {
	if p.Name != nil {
		dst.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Category != nil {
		dst.Category = strings.TrimSpace(*p.Category)
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Image != nil {
		dst.Image = strings.TrimSpace(*p.Image)
	}
}

// CreateProduct stores a new product owned by admin.
func (s *Service) CreateProduct(ctx context.Context, admin domain.Admin, in ProductInput) (*domain.Product, error) {
	p := domain.Product{
		ID:          s.ids.Next(),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		Description: in.Description,
		Image:       strings.TrimSpace(in.Image),
		AdminID:     admin.ID,
		AdminName:   admin.Name,
		CreatedAt:   s.ids.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// UpdateProduct merges patch into the product and stamps the acting admin
// as its owner.
func (s *Service) UpdateProduct(ctx context.Context, admin domain.Admin, id int64, patch ProductPatch) (*domain.Product, error) {
	return s.repo.Update(ctx, id, func(p *domain.Product) error {
		if p.AdminID != admin.ID {
			if s.policy.EnforceOwnership {
				return fmt.Errorf("%w: product %d belongs to admin %d", domain.ErrForbidden, id, p.AdminID)
			}
			s.logger.Printf("catalog: admin id=%d editing product id=%d owned by admin id=%d", admin.ID, id, p.AdminID)
		}
		patch.apply(p)
		p.AdminID = admin.ID
		p.AdminName = admin.Name
		return p.Validate()
	})
}

// DeleteProduct removes the product. Deleting an unknown id succeeds.
func (s *Service) DeleteProduct(ctx context.Context, admin domain.Admin, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Printf("catalog: delete id=%d by admin id=%d: nothing to delete", id, admin.ID)
	}
	return nil
}

// ListProducts returns the products matching f in catalog order.
func (s *Service) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories lists the distinct, non-blank category tags in sorted order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range all {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

// AdminProducts lists the products owned by admin.
func (s *Service) AdminProducts(ctx context.Context, admin domain.Admin) ([]domain.Product, error) {
	return s.ListProducts(ctx, domain.OwnedBy(admin.ID))
}

// AdminStats counts admin's products, their stock and stock value.
func (s *Service) AdminStats(ctx context.Context, admin domain.Admin) (domain.AdminStats, error) {
	products, err := s.AdminProducts(ctx, admin)
	if err != nil {
		return domain.AdminStats{}, err
	}
	stats := domain.AdminStats{TotalValue: decimal.Zero}
	for _, p := range products {
		stats.TotalProducts++
		stats.TotalStock += p.Stock
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return stats, nil
}
