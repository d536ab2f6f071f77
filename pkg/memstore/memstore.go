// Package memstore is an in-process blob store for single-instance dev runs and tests.
package memstore

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Store keeps string blobs in memory. Entries written with a ttl are evicted
// by a background loop once they expire.
type Store struct {
	cache *ttlcache.Cache[string, string]
}

// New starts the eviction loop; call Close to stop it.
func New() *Store {
	cache := ttlcache.New[string, string](
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go cache.Start()
	return &Store{cache: cache}
}

// Lookup returns the value at key; expired entries read as missing.
func (s *Store) Lookup(_ context.Context, key string) (string, bool, error) {
	item := s.cache.Get(key)
	if item == nil {
		return "", false, nil
	}
	return item.Value(), true, nil
}

// Set replaces the value at key. A zero ttl never expires.
func (s *Store) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(key, value, ttl)
	return nil
}

func (s *Store) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(key)
	}
	return nil
}

// Ping always succeeds; it lets the store stand in for redis in readiness checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close stops the eviction loop. Stored values stay readable.
func (s *Store) Close() error {
	s.cache.Stop()
	return nil
}
