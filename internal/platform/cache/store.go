// Package cache provides the record-set cache used by the marketdata gateway.
// A Store wraps one Backend (Redis or MongoDB) or runs disabled when no backend
// is reachable, so callers never branch on availability.
package cache

import (
	"context"
	"fmt"
	"strings"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// DefaultNamespace prefixes every cache key.
const DefaultNamespace = "ohlcv"

// Backend is the key/value persistence a Store delegates to.
type Backend interface {
	// Get returns the payload for key. found is false when the key is absent.
	Get(ctx context.Context, key entity.CacheKey) (payload []byte, found bool, err error)
	// Put overwrites the payload for key.
	Put(ctx context.Context, key entity.CacheKey, payload []byte) error
	// Name identifies the backend in logs and health output.
	Name() string
}

// Store is the cache used by the gateway. The zero value is a disabled store.
type Store struct {
	backend Backend
}

// NewStore returns a Store backed by b. A nil backend yields a disabled store.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Disabled returns a store whose Get always misses and whose Put is a no-op.
func Disabled() *Store {
	return &Store{}
}

// Enabled reports whether the store has a live backend.
func (s *Store) Enabled() bool {
	return s != nil && s.backend != nil
}

// Mode returns the backend name, or "disabled".
func (s *Store) Mode() string {
	if !s.Enabled() {
		return "disabled"
	}
	return s.backend.Name()
}

// Get looks up key. Errors are returned for the caller to report; they never
// imply a hit.
func (s *Store) Get(ctx context.Context, key entity.CacheKey) ([]byte, bool, error) {
	if !s.Enabled() {
		return nil, false, nil
	}
	b, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if !ok || len(b) == 0 {
		return nil, false, nil
	}
	return b, true, nil
}

// Put stores payload under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key entity.CacheKey, payload []byte) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.backend.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return nil
}

// redisKey renders the Redis key for a cache key under namespace.
func redisKey(namespace string, key entity.CacheKey) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		namespace,
		key.Kind,
		safe(key.Symbol),
		key.From.Format(entity.DateLayout),
		key.To.Format(entity.DateLayout),
	)
}

// safe escapes characters that are problematic for Redis keys.
// Index names such as "NIFTY 50" contain spaces.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
