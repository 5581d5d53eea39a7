package domain

import (
	"sync"
	"time"
)

// IDGenerator hands out millisecond-timestamp ids that never repeat within
// the process, even when called twice in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh id strictly greater than any previously returned.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Now returns the generator's clock reading in UTC.
func (g *IDGenerator) Now() time.Time {
	return g.now().UTC()
}

// NewIDGeneratorWithClock is NewIDGenerator with an injected clock.
func NewIDGeneratorWithClock(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}
