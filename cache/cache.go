// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cache is a small in-memory TTL cache. Concurrent misses for the
// same key share one fetch.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item[V any] struct {
	val       V
	expiresAt time.Time
}

type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	group singleflight.Group
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{items: make(map[string]item[V]), ttl: ttl}
}

// GetOrFetch returns the cached value for key, or calls fetch and stores
// its result. hit reports whether the value came from the cache. Errors
// are not cached.
func (c *Cache[V]) GetOrFetch(key string, fetch func() (V, error)) (v V, hit bool, err error) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(it.expiresAt) {
		return it.val, true, nil
	}

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := fetch()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		c.mu.Lock()
		for k, old := range c.items {
			if now.After(old.expiresAt) {
				delete(c.items, k)
			}
		}
		c.items[key] = item[V]{val: v, expiresAt: now.Add(c.ttl)}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Len returns the number of stored items, expired or not
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
