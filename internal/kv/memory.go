package kv

import (
	"context"
	"fmt"
	"sync"
)

type memoryNamespace struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory returns a process-local Namespace.
func NewMemory() Namespace {
	return &memoryNamespace{entries: make(map[string]Entry)}
}

func (m *memoryNamespace) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return Entry{Key: key}, nil
	}
	e.Value = append([]byte(nil), e.Value...)
	return e, nil
}

func (m *memoryNamespace) Commit(_ context.Context, writes ...Write) error {
	if err := checkBatch(writes); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		if cur := m.entries[w.Key].Version; cur != w.Version {
			return fmt.Errorf("%w: key=%s expected=%d current=%d", ErrConflict, w.Key, w.Version, cur)
		}
	}
	for _, w := range writes {
		if w.Delete {
			if cur := m.entries[w.Key]; cur.Exists() {
				m.entries[w.Key] = Entry{Key: w.Key, Version: w.Version + 1, Deleted: true}
			}
			continue
		}
		m.entries[w.Key] = Entry{
			Key:     w.Key,
			Value:   append([]byte(nil), w.Value...),
			Version: w.Version + 1,
		}
	}
	return nil
}

func (m *memoryNamespace) Ping(context.Context) error {
	return nil
}
