// Package cache is the TTL store behind ledgerlink.Cache. Entries are built
// reconciliation results keyed by the fingerprint of the inputs that
// produced them.
package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store wraps go-cache and counts hits and misses.
type Store struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a store. defaultTTL is how long an entry lives;
// cleanupInterval is how often expired entries are purged. A zero or
// negative TTL keeps entries until they are deleted.
func New(defaultTTL, cleanupInterval time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &Store{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the store.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.store.Get(key)
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

// Lookup retrieves a value of type T. A value of another type counts as a miss.
func Lookup[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores a value with the default TTL.
func (s *Store) Set(key string, value any) {
	s.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with a custom TTL.
func (s *Store) SetWithTTL(key string, value any, ttl time.Duration) {
	s.store.Set(key, value, ttl)
}

// Delete removes a value.
func (s *Store) Delete(key string) {
	s.store.Delete(key)
}

// Clear removes every entry and resets the counters.
func (s *Store) Clear() {
	s.store.Flush()
	s.hits.Store(0)
	s.misses.Store(0)
}

// ItemCount returns the number of entries, including expired ones not yet purged.
func (s *Store) ItemCount() int {
	return s.store.ItemCount()
}

// Stats summarises store usage.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current statistics.
func (s *Store) GetStats() Stats {
	return Stats{
		ItemCount: s.store.ItemCount(),
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
	}
}
