// Package store loads and saves whole record collections in a kv.Namespace.
//
// A collection is a JSON array under one key; a marker is a single JSON
// record (or nothing) under one key. Writes always replace the full value
// and are conditional on the version that was loaded.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"shopverse/internal/domain"
	"shopverse/internal/kv"
)

// Collection and marker keys in the shared namespace.
const (
	KeyUsers        = "users"
	KeyAdmins       = "admins"
	KeyProducts     = "products"
	KeyCart         = "cart"
	KeyOrders       = "orders"
	KeyCurrentUser  = "current_user"
	KeyCurrentAdmin = "current_admin"
)

// collectionKeys are initialised to empty arrays on first run.
var collectionKeys = []string{KeyUsers, KeyAdmins, KeyProducts, KeyCart, KeyOrders}

// ErrMalformed means a stored value could not be decoded. Only this package
// writes the namespace, so it is treated as unrecoverable.
var ErrMalformed = errors.New("store: malformed stored data")

type Store struct {
	ns     kv.Namespace
	logger *log.Logger
}

func New(ns kv.Namespace, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{ns: ns, logger: logger}
}

// Init writes an empty array for every collection key that is absent.
func (s *Store) Init(ctx context.Context) error {
	var writes []kv.Write
	for _, key := range collectionKeys {
		e, err := s.ns.Get(ctx, key)
		if err != nil {
			return err
		}
		if !e.Exists() {
			writes = append(writes, kv.Write{Key: key, Value: []byte("[]"), Version: e.Version})
		}
	}
	if len(writes) == 0 {
		return nil
	}
	err := s.ns.Commit(ctx, writes...)
	if errors.Is(err, kv.ErrConflict) {
		// another process initialised first
		return nil
	}
	if err == nil {
		s.logger.Printf("store: initialised collections=%d", len(writes))
	}
	return err
}

// Commit applies staged writes atomically.
func (s *Store) Commit(ctx context.Context, writes ...kv.Write) error {
	err := s.ns.Commit(ctx, writes...)
	if err == nil {
		return nil
	}
	if errors.Is(err, kv.ErrConflict) {
		s.logger.Printf("store: commit conflict writes=%d error=%v", len(writes), err)
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	s.logger.Printf("store: commit writes=%d error=%v", len(writes), err)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ns.Ping(ctx)
}

// Collection is an ordered record sequence as read at one version.
type Collection[T any] struct {
	Key     string
	Records []T
	version int64
}

// Load reads the collection under key; an absent key yields no records.
func Load[T any](ctx context.Context, s *Store, key string) (*Collection[T], error) {
	e, err := s.ns.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c := &Collection[T]{Key: key, Records: []T{}, version: e.Version}
	if !e.Exists() {
		return c, nil
	}
	var records []T
	if err := json.Unmarshal(e.Value, &records); err != nil {
		s.logger.Printf("store: decode key=%s error=%v", key, err)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrMalformed, key, err)
	}
	if records != nil {
		c.Records = records
	}
	return c, nil
}

// Version is the namespace version the collection was read at.
func (c *Collection[T]) Version() int64 {
	return c.version
}

// Stage encodes records as the full new value of the collection.
func (c *Collection[T]) Stage(records []T) (kv.Write, error) {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return kv.Write{}, fmt.Errorf("store: encode key=%s: %w", c.Key, err)
	}
	return kv.Write{Key: c.Key, Value: b, Version: c.version}, nil
}

// Update loads one collection, replaces it with fn's result and commits.
// When fn fails nothing is written.
func Update[T any](ctx context.Context, s *Store, key string, fn func([]T) ([]T, error)) ([]T, error) {
	c, err := Load[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	next, err := fn(c.Records)
	if err != nil {
		return nil, err
	}
	w, err := c.Stage(next)
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx, w); err != nil {
		return nil, err
	}
	return next, nil
}

// Marker is a single optional record such as the current session identity.
type Marker[T any] struct {
	Key     string
	Value   *T
	version int64
}

func LoadMarker[T any](ctx context.Context, s *Store, key string) (*Marker[T], error) {
	e, err := s.ns.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m := &Marker[T]{Key: key, version: e.Version}
	if !e.Exists() {
		return m, nil
	}
	var v T
	if err := json.Unmarshal(e.Value, &v); err != nil {
		s.logger.Printf("store: decode marker key=%s error=%v", key, err)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrMalformed, key, err)
	}
	m.Value = &v
	return m, nil
}

// Stage sets the marker to v, or removes it when v is nil.
func (m *Marker[T]) Stage(v *T) (kv.Write, error) {
	if v == nil {
		return kv.Write{Key: m.Key, Delete: true, Version: m.version}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return kv.Write{}, fmt.Errorf("store: encode key=%s: %w", m.Key, err)
	}
	return kv.Write{Key: m.Key, Value: b, Version: m.version}, nil
}
