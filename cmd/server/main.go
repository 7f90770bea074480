package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"ohlcv_gateway/internal/app/di"
	"ohlcv_gateway/internal/app/router"
	marketdatahandler "ohlcv_gateway/internal/feature/marketdata/transport/handler"
	marketdatausecase "ohlcv_gateway/internal/feature/marketdata/usecase"
	symbollisthandler "ohlcv_gateway/internal/feature/symbollist/transport/handler"
	"ohlcv_gateway/internal/platform/config"
	"ohlcv_gateway/internal/platform/logging"
)

func main() {
	// .envを読み込む
	config.LoadDotEnv()
	cfg := config.Load()
	slog.SetDefault(logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()

	// Cache（到達できない場合はキャッシュなしで起動）
	store, closeCache := di.NewCacheStore(cfg)
	defer closeCache()

	// F&O銘柄カタログ（起動時に一度だけ読み込む）
	catalog, err := di.NewSymbolCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to load F&O symbols: %v", err)
	}

	// 上流データソース
	source, err := di.NewDataSource(cfg, di.NewRateLimiter(cfg))
	if err != nil {
		log.Fatalf("failed to configure upstream: %v", err)
	}

	// Usecase
	gateway := marketdatausecase.NewGateway(store, source, catalog)

	// Handler
	recordH := marketdatahandler.NewRecordHandler(gateway)
	symbolH := symbollisthandler.NewSymbolHandler(catalog, di.IndexSymbols())

	// ルータ生成
	r := router.NewRouter(recordH, symbolH, store)

	slog.Info("starting server", "port", cfg.Port, "cache", store.Mode(), "upstream", cfg.Upstream, "fno_symbols", catalog.Len())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
