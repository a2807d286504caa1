package csvstore

import (
	"sync"
	"time"
)

// snapshotCache holds a recently loaded table so dashboard page loads do not
// reread the file on every request. Entries expire after a TTL and are
// invalidated on every write. Thread-safe with sync.RWMutex.
type snapshotCache[T any] struct {
	mu     sync.RWMutex
	rows   []T
	expiry time.Time
	ttl    time.Duration
}

func newSnapshotCache[T any](ttl time.Duration) *snapshotCache[T] {
	return &snapshotCache[T]{ttl: ttl}
}

// Get returns the cached rows if present and not expired.
func (c *snapshotCache[T]) Get() ([]T, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rows == nil || time.Now().After(c.expiry) {
		return nil, false
	}
	return c.rows, true
}

// Set stores a fresh snapshot.
func (c *snapshotCache[T]) Set(rows []T) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = rows
	c.expiry = time.Now().Add(c.ttl)
}

// Invalidate drops the snapshot. Called after every write.
func (c *snapshotCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = nil
}
