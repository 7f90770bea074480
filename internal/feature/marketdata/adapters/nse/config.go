// Package nse provides a client for the NSE historical data API.
package nse

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL   = "https://www.nseindia.com"
	defaultChunkDays = 365
	defaultTimeout   = 15 * time.Second
)

// Config holds configuration for the NSE client.
type Config struct {
	BaseURL   string        // e.g. "https://www.nseindia.com"
	ChunkDays int           // longest date window requested in one call
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads NSE configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("NSE_BASE_URL"),
		ChunkDays: defaultChunkDays,
		Timeout:   defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v, err := strconv.Atoi(os.Getenv("NSE_CHUNK_DAYS")); err == nil && v > 0 {
		cfg.ChunkDays = v
	}
	if d, err := time.ParseDuration(os.Getenv("UPSTREAM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}
