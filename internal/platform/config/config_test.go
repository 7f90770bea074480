package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "CACHE_BACKEND", "CACHE_NAMESPACE", "CACHE_PROBE_TIMEOUT",
	"FNO_SYMBOLS_SOURCE", "FNO_SYMBOLS_CSV", "UPSTREAM", "UPSTREAM_RATE_LIMIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, Config{
		Port:              "8080",
		LogLevel:          "info",
		LogFormat:         "text",
		CacheBackend:      CacheRedis,
		CacheNamespace:    "ohlcv",
		CacheProbeTimeout: 3 * time.Second,
		SymbolsSource:     SymbolsCSV,
		SymbolsCSVPath:    "fo_mktlots.csv",
		Upstream:          UpstreamNSE,
		UpstreamRateLimit: 30,
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Mongo")
	t.Setenv("CACHE_PROBE_TIMEOUT", "500ms")
	t.Setenv("FNO_SYMBOLS_SOURCE", "DB")
	t.Setenv("UPSTREAM", "bridge")
	t.Setenv("UPSTREAM_RATE_LIMIT", "0")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, CacheMongo, cfg.CacheBackend)
	assert.Equal(t, 500*time.Millisecond, cfg.CacheProbeTimeout)
	assert.Equal(t, SymbolsDB, cfg.SymbolsSource)
	assert.Equal(t, UpstreamBridge, cfg.Upstream)
	assert.Equal(t, 0, cfg.UpstreamRateLimit)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_PROBE_TIMEOUT", "soon")
	t.Setenv("UPSTREAM_RATE_LIMIT", "-5")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.CacheProbeTimeout)
	assert.Equal(t, 30, cfg.UpstreamRateLimit)
}

// TestLoadDotEnv は.envの値が未設定の環境変数にだけ反映されることを検証します。
func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=1111\nLOG_LEVEL=debug\n"), 0o600))
	t.Chdir(dir)

	// godotenv は既存の環境変数を上書きしないため、空文字の LOG_LEVEL は一旦削除する
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	LoadDotEnv()
	cfg := Load()

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}
