package db

import (
	"context"
	"fmt"
	"log"

	"shopverse/internal/config"
	"shopverse/internal/kv"
)

// OpenNamespace connects the backend named by cfg.StoreBackend. The returned
// close func releases the connection and is safe to call once.
func OpenNamespace(ctx context.Context, cfg config.Config, logger *log.Logger) (kv.Namespace, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Printf("db: using in-memory store, data is lost on exit")
		return kv.NewMemory(), func() {}, nil

	case config.BackendPostgres:
		pool, err := Connect(ctx, cfg.DBConnString, PoolOptionsFrom(cfg))
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Printf("db: using postgres namespace=%s", cfg.KVNamespace)
		return kv.NewPostgres(pool, cfg.KVNamespace, logger), pool.Close, nil

	case config.BackendRedis:
		client, err := ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Printf("db: using redis addr=%s prefix=%s", cfg.RedisAddr, cfg.RedisPrefix)
		return kv.NewRedis(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}
