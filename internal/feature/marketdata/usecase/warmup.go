package usecase

import (
	"context"
	"log/slog"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// StockFetcher は株式レコードを取得するインターフェースです（通常は *Gateway）。
type StockFetcher interface {
	FetchStockRecords(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error)
}

// WarmupResult はウォームアップの集計結果です。
type WarmupResult struct {
	Succeeded int
	Failed    int
}

// WarmupUsecase はF&O銘柄の日足を事前に取得し、キャッシュを温めるユースケースです。
// 上流へのレート制限はデータソース側で行います。
type WarmupUsecase struct {
	fetcher StockFetcher
}

// NewWarmupUsecase は新しい WarmupUsecase を作成します。
func NewWarmupUsecase(fetcher StockFetcher) *WarmupUsecase {
	return &WarmupUsecase{fetcher: fetcher}
}

// WarmAll は全銘柄について期間 [from, to] のレコードをゲートウェイ経由で取得します。
// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ進みます。
// ctx がキャンセルされた場合はそこまでの結果と ctx.Err() を返します。
func (u *WarmupUsecase) WarmAll(ctx context.Context, symbols []string, from, to time.Time) (WarmupResult, error) {
	var res WarmupResult
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		records, err := u.fetcher.FetchStockRecords(ctx, s, from, to, true)
		if err != nil {
			slog.Error("failed to warm cache", "symbol", s, "error", err)
			res.Failed++
			continue
		}
		slog.Debug("cache warmed", "symbol", s, "records", len(records))
		res.Succeeded++
	}
	return res, nil
}
