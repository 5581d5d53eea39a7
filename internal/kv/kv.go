// Package kv is the shared key-value namespace every collection is stored in.
//
// Each key holds one JSON document and a version counter. Writers pass the
// version they read; Commit applies a batch of writes only if every key is
// still at the version its writer saw, so two processes racing on the same
// collection cannot silently overwrite each other.
package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned by Commit when a key moved past the expected version.
	ErrConflict = errors.New("kv: version conflict")
	// ErrDuplicateKey is returned by Commit when a batch names the same key twice.
	ErrDuplicateKey = errors.New("kv: duplicate key in batch")
)

// Entry is a stored value. Version 0 means the key was never written. A
// deleted key is kept as a tombstone at its last version, so versions only
// grow and a writer that read before the delete cannot recreate the key.
type Entry struct {
	Key     string
	Value   []byte
	Version int64
	Deleted bool
}

// Exists reports whether the key held a value when read.
func (e Entry) Exists() bool {
	return e.Version > 0 && !e.Deleted
}

// Write replaces (or deletes) one key, provided it is still at Version.
type Write struct {
	Key     string
	Value   []byte
	Delete  bool
	Version int64
}

// Namespace is implemented by the memory, postgres and redis backends.
type Namespace interface {
	Get(ctx context.Context, key string) (Entry, error)
	// Commit applies all writes or none of them.
	Commit(ctx context.Context, writes ...Write) error
	Ping(ctx context.Context) error
}

func checkBatch(writes []Write) error {
	seen := make(map[string]struct{}, len(writes))
	for _, w := range writes {
		if _, dup := seen[w.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, w.Key)
		}
		seen[w.Key] = struct{}{}
	}
	return nil
}
