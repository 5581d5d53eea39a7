package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"shopverse/internal/domain"
	identityrepo "shopverse/internal/repository/identity"
	productrepo "shopverse/internal/repository/product"
)

var (
	DemoAdmin = domain.Admin{ID: 1001, Name: "Artisan Admin", Email: "admin@shopverse.com", Password: "admin123"}
	DemoUser  = domain.User{ID: 2001, Name: "John Doe", Email: "user@shopverse.com", Password: "user123"}
)

const demoSeller = "Local Artisan"

type productSeed struct {
	ID          int64
	Name        string
	Price       int64
	Category    string
	Stock       int
	Description string
	Image       string
}

var handicrafts = []productSeed{
	{3001, "Decorated Clay Pot", 450, "Pottery", 50, "Hand-painted clay pot with traditional patterns. No two are alike.", "images/1.webp"},
	{3002, "Ajrak Pattern Rug", 1200, "Textiles", 30, "Block-printed Ajrak rug coloured with natural dyes.", "images/2.jpg"},
	{3003, "Bridal Bangles", 850, "Jewelry", 100, "Embellished bridal bangles made by master artisans.", "images/3.webp"},
	{3004, "Blue Pottery", 750, "Pottery", 75, "Cobalt glazed pottery, hand-painted and kiln fired.", "images/4.jpg"},
	{3005, "Truck Art Painted Pot", 599, "Pottery", 40, "Pot painted in bold folk truck art colours.", "images/5.jpg"},
	{3006, "Wooden Elephant", 650, "Crafts", 60, "Hand-carved elephant with a natural wood finish.", "images/7.jpg"},
	{3007, "Wooden Flower Stand", 950, "Crafts", 45, "Carved flower stand for plants and cut flowers.", "images/8.jpg"},
	{3008, "Wooden Chest and Side Table", 2500, "Furniture", 55, "Carved chest that doubles as a side table.", "images/99.jpg"},
}

// DemoProducts returns the handicraft catalog, all owned by DemoAdmin.
func DemoProducts() []domain.Product {
	out := make([]domain.Product, 0, len(handicrafts))
	for _, p := range handicrafts {
		out = append(out, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       decimal.NewFromInt(p.Price),
			Category:    p.Category,
			Stock:       p.Stock,
			Description: p.Description,
			Image:       p.Image,
			AdminID:     DemoAdmin.ID,
			AdminName:   demoSeller,
		})
	}
	return out
}

// Apply loads the demo data. The catalog is overwritten every time; the
// demo admin and shopper are only added to empty collections.
func Apply(ctx context.Context, users, admins identityrepo.Repository, products productrepo.Repository, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	added, err := admins.SeedIfEmpty(ctx, []domain.Identity{DemoAdmin})
	if err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	logger.Printf("seed: admins added=%t", added)

	added, err = users.SeedIfEmpty(ctx, []domain.Identity{DemoUser})
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	logger.Printf("seed: users added=%t", added)

	catalog := DemoProducts()
	if err := products.ReplaceAll(ctx, catalog); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	logger.Printf("seed: products count=%d", len(catalog))
	return nil
}
