package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
	productrepo "shopverse/internal/repository/product"
	"shopverse/internal/service/catalog"
	"shopverse/internal/store"
)

var artisan = domain.Admin{ID: 1001, Name: "Artisan Admin"}

func newCatalog(t *testing.T) (*catalog.Service, productrepo.Repository) {
	t.Helper()
	repo := productrepo.NewKV(store.New(kv.NewMemory(), nil), nil)
	return catalog.New(repo, domain.NewIDGenerator(), catalog.Policy{}, nil), repo
}

func TestCSVImporter_Run(t *testing.T) {
	svc, repo := newCatalog(t)
	if _, err := repo.Upsert(context.Background(), domain.Product{ID: 3001, Name: "Old Pot", Price: decimal.NewFromInt(1), Stock: 1, AdminID: 1001}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	csvData := `id,name,price,category,stock,description,image
3001,Decorated Clay Pot,450,Pottery,50,Hand-painted,images/1.webp
,Ajrak Pattern Rug,1200.50,Textiles,30,Block printed,images/2.jpg
,,,,,,
9999,Bridal Bangles,850,Jewelry,100,,`

	res, err := NewCSVImporter(strings.NewReader(csvData), svc, artisan).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Created != 2 || res.Updated != 1 {
		t.Fatalf("expected 2 created and 1 updated, got %+v", res)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}
	if all[0].Name != "Decorated Clay Pot" || all[0].Stock != 50 || !all[0].Price.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected updated product: %+v", all[0])
	}
	if !all[1].Price.Equal(decimal.RequireFromString("1200.5")) || all[1].AdminID != 1001 {
		t.Fatalf("unexpected created product: %+v", all[1])
	}
	if all[2].ID == 9999 {
		t.Fatalf("unknown id should create a product with a fresh id")
	}
}

func TestCSVImporter_BadRows(t *testing.T) {
	cases := map[string]string{
		"missing name column": "price,stock\n1,2",
		"bad price":           "name,price\nPot,cheap",
		"bad stock":           "name,stock\nPot,lots",
		"negative stock":      "name,stock\nPot,-1",
		"blank name":          "name,stock\n,3",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newCatalog(t)
			_, err := NewCSVImporter(strings.NewReader(data), svc, artisan).Run(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
