// Package collection provides the process-wide memoization cell behind every
// entity list. A cell loads once on first access, shares a single in-flight
// load among concurrent callers, and hands out the same slice reference for
// the remainder of the process.
package collection

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the full normalized list for a collection.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Cache memoizes the result of a LoadFunc. A failed load leaves the cell
// empty so the next call retries; a successful load is permanent until
// Reset.
type Cache[T any] struct {
	load LoadFunc[T]

	mu     sync.RWMutex
	items  []T
	loaded bool

	flight singleflight.Group
}

// New constructs a Cache around the supplied loader.
func New[T any](load LoadFunc[T]) *Cache[T] {
	return &Cache[T]{load: load}
}

// Get returns the cached list, loading it on first use. Concurrent first
// calls share one underlying load.
func (c *Cache[T]) Get(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.flight.Do("load", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			items := c.items
			c.mu.RUnlock()
			return items, nil
		}
		c.mu.RUnlock()

		items, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.items = items
		c.loaded = true
		c.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// Loaded reports whether the cell has been populated.
func (c *Cache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Reset clears the cell so the next Get reloads. Intended for tests.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.mu.Unlock()
}
