package di

import (
	"fmt"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/adapters/bridge"
	"ohlcv_gateway/internal/feature/marketdata/adapters/nse"
	"ohlcv_gateway/internal/feature/marketdata/usecase"
	"ohlcv_gateway/internal/platform/config"
	platformhttp "ohlcv_gateway/internal/platform/http"
	"ohlcv_gateway/internal/shared/ratelimiter"
)

// NewRateLimiter creates the limiter shared by upstream calls.
func NewRateLimiter(cfg config.Config) ratelimiter.Limiter {
	if cfg.UpstreamRateLimit <= 0 {
		return ratelimiter.Unlimited{}
	}
	return ratelimiter.NewRateLimiter(cfg.UpstreamRateLimit, time.Minute)
}

// NewDataSource creates the configured upstream client with its HTTP client.
func NewDataSource(cfg config.Config, limiter ratelimiter.Limiter) (usecase.MarketDataSource, error) {
	switch cfg.Upstream {
	case config.UpstreamNSE:
		ncfg := nse.LoadConfig()
		httpClient, err := platformhttp.NewSessionClient(ncfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("nse http client: %w", err)
		}
		return nse.NewClient(ncfg, httpClient, limiter), nil

	case config.UpstreamBridge:
		bcfg := bridge.LoadConfig()
		if bcfg.BaseURL == "" {
			return nil, fmt.Errorf("BRIDGE_BASE_URL is not set")
		}
		return bridge.NewClient(bcfg, platformhttp.NewHTTPClient(bcfg.Timeout), limiter), nil

	default:
		return nil, fmt.Errorf("unknown upstream %q", cfg.Upstream)
	}
}

// IndexSymbols returns the index names served by /symbols/indexes.
func IndexSymbols() []string {
	return nse.IndexSymbols()
}
