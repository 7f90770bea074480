// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"ohlcv_gateway/internal/platform/cache"
	"ohlcv_gateway/internal/platform/config"
	platformmongo "ohlcv_gateway/internal/platform/mongo"
	platformredis "ohlcv_gateway/internal/platform/redis"
)

// NewCacheStore probes the configured backend once and returns a Store over it.
// When the backend is unreachable or CACHE_BACKEND=none, the disabled store is
// returned and the service keeps running without a cache. The returned func
// releases the backend connection.
func NewCacheStore(cfg config.Config) (*cache.Store, func()) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.CacheNone:
		slog.Info("cache disabled by configuration")
		return cache.Disabled(), noop

	case config.CacheMongo:
		mcfg := platformmongo.LoadConfig()
		client, err := platformmongo.NewMongoClient(mcfg, cfg.CacheProbeTimeout)
		if err != nil {
			slog.Warn("MongoDB unavailable. Running without cache.", "error", err)
			return cache.Disabled(), noop
		}
		coll := client.Database(mcfg.Database).Collection(mcfg.Collection)
		return cache.NewStore(cache.NewMongoBackend(coll)), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("failed to disconnect MongoDB client", "error", err)
			}
		}

	case config.CacheRedis:
		rdb, err := platformredis.NewRedisClient(platformredis.LoadConfig(), cfg.CacheProbeTimeout)
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
			return cache.Disabled(), noop
		}
		return cache.NewStore(cache.NewRedisBackend(rdb, cfg.CacheNamespace)), func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}

	default:
		slog.Warn("unknown cache backend. Running without cache.", "backend", cfg.CacheBackend)
		return cache.Disabled(), noop
	}
}
