package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopverse/internal/config"
	"shopverse/internal/db"
	"shopverse/internal/domain"
	"shopverse/internal/httpserver"
	"shopverse/internal/metrics"
	cartrepo "shopverse/internal/repository/cart"
	identityrepo "shopverse/internal/repository/identity"
	orderrepo "shopverse/internal/repository/order"
	productrepo "shopverse/internal/repository/product"
	sessionrepo "shopverse/internal/repository/session"
	"shopverse/internal/seed"
	accountsvc "shopverse/internal/service/account"
	cartsvc "shopverse/internal/service/cart"
	catalogsvc "shopverse/internal/service/catalog"
	ordersvc "shopverse/internal/service/order"
	"shopverse/internal/store"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

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

	userRepo := identityrepo.NewKV(st, domain.RoleUser, logger)
	adminRepo := identityrepo.NewKV(st, domain.RoleAdmin, logger)
	productRepo := productrepo.NewKV(st, logger)
	orderRepo := orderrepo.NewKV(st, logger)

	// The in-memory backend starts empty on every run.
	if cfg.StoreBackend == config.BackendMemory {
		if err := seed.Apply(ctx, userRepo, adminRepo, productRepo, logger); err != nil {
			logger.Fatalf("seed demo data: %v", err)
		}
	}

	ids := domain.NewIDGenerator()
	m := metrics.New()

	accountService := accountsvc.New(userRepo, adminRepo, sessionrepo.NewKV(st), ids, logger)
	catalogService := catalogsvc.New(productRepo, ids, catalogsvc.Policy{
		EnforceOwnership: cfg.EnforceProductOwnership,
	}, logger)
	cartService := cartsvc.New(cartrepo.NewKV(st), productRepo, orderRepo, ids, cartsvc.Policy{
		DecrementStock:  cfg.DecrementStockOnCheckout,
		PartitionByUser: cfg.PartitionCartByUser,
	}, m, logger)
	orderService := ordersvc.New(orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:       st,
		AccountSvc:  accountService,
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s backend=%s", cfg.HTTPAddr, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
