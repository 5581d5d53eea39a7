package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shopverse/internal/config"
	"shopverse/internal/db"
	"shopverse/internal/domain"
	"shopverse/internal/importer"
	identityrepo "shopverse/internal/repository/identity"
	productrepo "shopverse/internal/repository/product"
	catalogsvc "shopverse/internal/service/catalog"
	"shopverse/internal/store"
)

func main() {
	var (
		filePath   string
		adminEmail string
	)
	flag.StringVar(&filePath, "file", "", "Path to product CSV (id,name,price,category,stock,description,image)")
	flag.StringVar(&adminEmail, "admin", "", "Email of the admin who will own the imported products")
	flag.Parse()

	if filePath == "" || adminEmail == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	ns, closeNS, err := db.OpenNamespace(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeNS()

	st := store.New(ns, logger)
	if err := st.Init(ctx); err != nil {
		log.Fatalf("init store: %v", err)
	}

	admin, err := identityrepo.NewKV(st, domain.RoleAdmin, logger).GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("find admin %q: %v", adminEmail, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	catalog := catalogsvc.New(productrepo.NewKV(st, logger), domain.NewIDGenerator(), catalogsvc.Policy{
		EnforceOwnership: cfg.EnforceProductOwnership,
	}, logger)
	imp := importer.NewCSVImporter(f, catalog, *admin)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d created, %d updated: %v", res.Created, res.Updated, err)
	}

	fmt.Printf("Imported %d new and %d updated products for %s in %s\n", res.Created, res.Updated, admin.Email, time.Since(start).Truncate(time.Millisecond))
}
