package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ohlcv_gateway/internal/feature/symbollist/adapters"
	"ohlcv_gateway/internal/feature/symbollist/usecase"
	"ohlcv_gateway/internal/platform/config"
	"ohlcv_gateway/internal/platform/db"
)

const dbConnectTimeout = 60 * time.Second

// NewSymbolCatalog loads the F&O symbol list once from the CSV file or the
// fno_symbols table.
func NewSymbolCatalog(ctx context.Context, cfg config.Config) (*usecase.SymbolCatalog, error) {
	switch cfg.SymbolsSource {
	case config.SymbolsCSV:
		slog.Info("loading F&O symbols from CSV", "path", cfg.SymbolsCSVPath)
		return usecase.NewSymbolCatalog(ctx, adapters.NewSymbolCSV(cfg.SymbolsCSVPath))

	case config.SymbolsDB:
		gdb, err := db.OpenDB(db.LoadConfigFromEnv(), dbConnectTimeout)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err == nil {
			defer func() {
				if err := sqlDB.Close(); err != nil {
					slog.Warn("failed to close symbol database", "error", err)
				}
			}()
		}
		slog.Info("loading F&O symbols from database")
		return usecase.NewSymbolCatalog(ctx, adapters.NewSymbolRepository(gdb))

	default:
		return nil, fmt.Errorf("unknown F&O symbol source %q", cfg.SymbolsSource)
	}
}
