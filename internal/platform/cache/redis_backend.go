package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// RedisBackend stores serialized record sets as plain Redis strings.
// Entries are written without expiry.
type RedisBackend struct {
	rdb       *redis.Client
	namespace string
}

var _ Backend = (*RedisBackend)(nil)

// NewRedisBackend returns a Redis backend. If namespace is empty, it uses DefaultNamespace.
func NewRedisBackend(rdb *redis.Client, namespace string) *RedisBackend {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisBackend{rdb: rdb, namespace: namespace}
}

// Name implements Backend.
func (r *RedisBackend) Name() string { return "redis" }

// Get implements Backend.
func (r *RedisBackend) Get(ctx context.Context, key entity.CacheKey) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, redisKey(r.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Put implements Backend.
func (r *RedisBackend) Put(ctx context.Context, key entity.CacheKey, payload []byte) error {
	return r.rdb.Set(ctx, redisKey(r.namespace, key), payload, 0).Err()
}
