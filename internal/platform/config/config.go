// Package config loads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends.
const (
	CacheRedis = "redis"
	CacheMongo = "mongo"
	CacheNone  = "none"
)

// Symbol sources.
const (
	SymbolsCSV = "csv"
	SymbolsDB  = "db"
)

// Upstreams.
const (
	UpstreamNSE    = "nse"
	UpstreamBridge = "bridge"
)

// Config is the process-level configuration shared by cmd/server and cmd/warmup.
// Adapter specific settings (Redis, MongoDB, NSE, bridge, DB) are loaded by
// each adapter's own LoadConfig.
type Config struct {
	Port              string
	LogLevel          string
	LogFormat         string
	CacheBackend      string
	CacheNamespace    string
	CacheProbeTimeout time.Duration
	SymbolsSource     string
	SymbolsCSVPath    string
	Upstream          string
	UpstreamRateLimit int // requests per minute, 0 disables limiting
}

// LoadDotEnv loads .env from the working directory when present.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:              getenv("PORT", "8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "text"),
		CacheBackend:      strings.ToLower(getenv("CACHE_BACKEND", CacheRedis)),
		CacheNamespace:    getenv("CACHE_NAMESPACE", "ohlcv"),
		CacheProbeTimeout: duration("CACHE_PROBE_TIMEOUT", 3*time.Second),
		SymbolsSource:     strings.ToLower(getenv("FNO_SYMBOLS_SOURCE", SymbolsCSV)),
		SymbolsCSVPath:    getenv("FNO_SYMBOLS_CSV", "fo_mktlots.csv"),
		Upstream:          strings.ToLower(getenv("UPSTREAM", UpstreamNSE)),
		UpstreamRateLimit: integer("UPSTREAM_RATE_LIMIT", 30),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func integer(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
