package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresNamespace struct {
	pool      *pgxpool.Pool
	namespace string
	logger    *log.Logger
}

// NewPostgres returns a Namespace stored in the kv_entries table. Several
// namespaces can share one table.
func NewPostgres(pool *pgxpool.Pool, namespace string, logger *log.Logger) Namespace {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresNamespace{pool: pool, namespace: namespace, logger: logger}
}

func (r *postgresNamespace) Get(ctx context.Context, key string) (Entry, error) {
	const q = `
SELECT value, version
FROM kv_entries
WHERE namespace = $1 AND key = $2
`
	e := Entry{Key: key}
	err := r.pool.QueryRow(ctx, q, r.namespace, key).Scan(&e.Value, &e.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{Key: key}, nil
		}
		r.logger.Printf("kv postgres: get namespace=%s key=%s error=%v", r.namespace, key, err)
		return Entry{}, err
	}
	e.Deleted = e.Value == nil
	return e, nil
}

func (r *postgresNamespace) Commit(ctx context.Context, writes ...Write) error {
	if err := checkBatch(writes); err != nil {
		return err
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, w := range writes {
		if err := r.apply(ctx, tx, w); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: key=%s inserted concurrently", ErrConflict, w.Key)
			}
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Printf("kv postgres: commit namespace=%s writes=%d error=%v", r.namespace, len(writes), err)
		return err
	}
	return nil
}

func (r *postgresNamespace) apply(ctx context.Context, tx pgx.Tx, w Write) error {
	var (
		current   int64
		tombstone bool
	)
	err := tx.QueryRow(ctx, `
SELECT version, value IS NULL
FROM kv_entries
WHERE namespace = $1 AND key = $2
FOR UPDATE
`, r.namespace, w.Key).Scan(&current, &tombstone)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if current != w.Version {
		return fmt.Errorf("%w: key=%s expected=%d current=%d", ErrConflict, w.Key, w.Version, current)
	}

	switch {
	case w.Delete:
		if current == 0 || tombstone {
			return nil
		}
		_, err = tx.Exec(ctx, `
UPDATE kv_entries
SET value = NULL, version = version + 1, updated_at = now()
WHERE namespace = $1 AND key = $2
`, r.namespace, w.Key)
	case current == 0:
		_, err = tx.Exec(ctx, `
INSERT INTO kv_entries (namespace, key, value, version)
VALUES ($1, $2, $3, 1)
`, r.namespace, w.Key, w.Value)
	default:
		_, err = tx.Exec(ctx, `
UPDATE kv_entries
SET value = $3, version = version + 1, updated_at = now()
WHERE namespace = $1 AND key = $2
`, r.namespace, w.Key, w.Value)
	}
	return err
}

func (r *postgresNamespace) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
