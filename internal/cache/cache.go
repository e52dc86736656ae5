// Package cache memoizes expensive computations in a key/value store.
//
// Entries are write-once: the first successful computation for a key is
// persisted and returned verbatim on every later lookup. There is no
// invalidation and no expiry.
package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when no entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Store is a key/value storage backing a Cache.
// Put must be atomic: a reader never observes a partially written entry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, content []byte) error
}

// Cache implements read-or-create memoization over a Store.
// It assumes a single writer per key; callers running lookups for the same
// key concurrently must serialize them.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
	}
}

// Store returns the underlying store.
func (c *Cache) Store() Store {
	return c.store
}

// ReadOrCreate returns the content stored at key. On a miss it calls create,
// persists its result and returns it. A failing create leaves the key absent.
func (c *Cache) ReadOrCreate(ctx context.Context, key string, create func() ([]byte, error)) ([]byte, error) {
	contents, err := c.store.Get(ctx, key)
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("store.Get(%s) > %w", key, err)
	}

	contents, err = create()
	if err != nil {
		return nil, fmt.Errorf("create(%s) > %w", key, err)
	}
	if err := c.store.Put(ctx, key, contents); err != nil {
		return nil, fmt.Errorf("store.Put(%s) > %w", key, err)
	}
	return contents, nil
}
