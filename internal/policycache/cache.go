// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package policycache provides a TTL-bound get-or-load cache with
// single-flight coalescing, used to wrap the external policy and
// platform-capability lookups. Each cache is an explicit per-instance
// object with an injectable clock; there is no process-wide singleton.
package policycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fetches the value for a key on a cache miss.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
	expiresAt time.Time
}

// Cache is a keyed TTL cache. Expired entries are never served: a
// fresh load is always triggered past expiry. Concurrent misses for
// the same key invoke the loader exactly once and share the result
// (or the error) with every waiter. Loader failures are never cached.
type Cache[K comparable, V any] struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[K]entry[V]
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithClock substitutes the time source, letting tests control expiry
// deterministically.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.now = now
	}
}

// New returns a cache whose entries live for ttl.
func New[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[K]entry[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad returns the cached value for key, or invokes load to fetch
// it. Concurrent callers for the same missing key are coalesced onto a
// single load whose result every caller receives.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load Loader[K, V]) (V, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(c.flightKey(key), func() (any, error) {
		// Another coalesced caller may have completed the load and
		// stored the entry between our miss and acquiring the flight.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := load(ctx, key)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Invalidate removes the entry for key, if present. In-flight loads
// for the key are unaffected; their result will repopulate the entry.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of live (unexpired) entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *Cache[K, V]) lookup(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) store(key K, value V) {
	now := c.now()
	c.mu.Lock()
	c.entries[key] = entry[V]{
		value:     value,
		fetchedAt: now,
		expiresAt: now.Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *Cache[K, V]) flightKey(key K) string {
	return fmt.Sprintf("%v", key)
}
