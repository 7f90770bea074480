package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"ohlcv_gateway/internal/app/di"
	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/usecase"
	"ohlcv_gateway/internal/platform/config"
	"ohlcv_gateway/internal/platform/logging"
)

func main() {
	today := time.Now().UTC().Format(entity.DateLayout)
	fromFlag := flag.String("from", time.Now().UTC().AddDate(-1, 0, 0).Format(entity.DateLayout), "start date (YYYY-MM-DD)")
	toFlag := flag.String("to", today, "end date (YYYY-MM-DD)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall timeout")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.Load()
	slog.SetDefault(logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	from, err := time.Parse(entity.DateLayout, *fromFlag)
	if err != nil {
		log.Fatalf("invalid -from: %v", err)
	}
	to, err := time.Parse(entity.DateLayout, *toFlag)
	if err != nil {
		log.Fatalf("invalid -to: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeCache := di.NewCacheStore(cfg)
	defer closeCache()
	if !store.Enabled() {
		slog.Warn("cache is disabled; warmup will only exercise the upstream")
	}

	catalog, err := di.NewSymbolCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to load F&O symbols: %v", err)
	}
	source, err := di.NewDataSource(cfg, di.NewRateLimiter(cfg))
	if err != nil {
		log.Fatalf("failed to configure upstream: %v", err)
	}

	uc := usecase.NewWarmupUsecase(usecase.NewGateway(store, source, catalog))
	res, err := uc.WarmAll(ctx, catalog.List(), from, to)
	if err != nil {
		slog.Error("warmup interrupted", "error", err, "succeeded", res.Succeeded, "failed", res.Failed)
		closeCache()
		os.Exit(1)
	}
	slog.Info("warmup ok", "succeeded", res.Succeeded, "failed", res.Failed)
}
