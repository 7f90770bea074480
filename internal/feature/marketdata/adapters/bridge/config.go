// Package bridge provides a client for a tabular JSON data service that
// serves OHLCV rows over /stock-data and /index-data.
package bridge

import (
	"os"
	"time"
)

// Config holds configuration for the bridge client.
type Config struct {
	BaseURL string        // e.g. "http://localhost:8000"
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads bridge configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("BRIDGE_BASE_URL"),
		Timeout: 30 * time.Second,
	}
	if d, err := time.ParseDuration(os.Getenv("UPSTREAM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}
