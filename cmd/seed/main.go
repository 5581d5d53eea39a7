package main

import (
	"context"
	"log"
	"os"

	"shopverse/internal/config"
	"shopverse/internal/db"
	"shopverse/internal/domain"
	identityrepo "shopverse/internal/repository/identity"
	productrepo "shopverse/internal/repository/product"
	"shopverse/internal/seed"
	"shopverse/internal/store"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.StoreBackend == config.BackendMemory {
		logger.Fatalf("seed needs a persistent STORE_BACKEND (postgres or redis)")
	}

	ctx := context.Background()
	ns, closeNS, err := db.OpenNamespace(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer closeNS()

	st := store.New(ns, logger)
	if err := st.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}

	err = seed.Apply(ctx,
		identityrepo.NewKV(st, domain.RoleUser, logger),
		identityrepo.NewKV(st, domain.RoleAdmin, logger),
		productrepo.NewKV(st, logger),
		logger,
	)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
