// Package usecase はOHLCVデータ取得のキャッシュアサイド処理を実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/domain"
	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/normalize"
)

// RecordCache はシリアライズ済みレコードセットのキャッシュを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type RecordCache interface {
	// Get はキーに対応するペイロードを返します。存在しない場合 found は false です。
	Get(ctx context.Context, key entity.CacheKey) (payload []byte, found bool, err error)
	// Put はキーに対応するペイロードを上書き保存します。
	Put(ctx context.Context, key entity.CacheKey, payload []byte) error
}

// MarketDataSource は上流の市場データソースを抽象化します。
type MarketDataSource interface {
	// Fetch は銘柄と期間に対応する生の行を返します。
	Fetch(ctx context.Context, symbol string, from, to time.Time, kind entity.Kind) ([]entity.RawRow, error)
}

// FnoCatalog はF&O対象銘柄の判定を行います。
type FnoCatalog interface {
	IsFnoEligible(symbol string) bool
}

// Gateway は検証 → キャッシュ参照 → 取得 → 正規化 → キャッシュ保存 の順で
// OHLCVレコードを返します。リクエスト間で共有する可変状態は持ちません。
type Gateway struct {
	cache   RecordCache
	source  MarketDataSource
	catalog FnoCatalog
}

// NewGateway は依存をコンストラクタで受け取りGatewayを生成します。
func NewGateway(cache RecordCache, source MarketDataSource, catalog FnoCatalog) *Gateway {
	return &Gateway{cache: cache, source: source, catalog: catalog}
}

// FetchStockRecords は株式の日足レコードを返します。
// fnoOnly が true の場合、F&O対象外の銘柄は ErrInvalidRequest になります。
func (g *Gateway) FetchStockRecords(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error) {
	return g.fetch(ctx, entity.KindStock, symbol, from, to, fnoOnly)
}

// FetchIndexRecords は指数の日足レコードを返します。
func (g *Gateway) FetchIndexRecords(ctx context.Context, symbol string, from, to time.Time) ([]entity.Record, error) {
	return g.fetch(ctx, entity.KindIndex, symbol, from, to, false)
}

func (g *Gateway) fetch(ctx context.Context, kind entity.Kind, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error) {
	// 1) 入力検証（I/Oの前に失敗させる）
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", domain.ErrInvalidRequest)
	}
	from, to = entity.DateOf(from), entity.DateOf(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from date %s is after to date %s",
			domain.ErrInvalidRequest, from.Format(entity.DateLayout), to.Format(entity.DateLayout))
	}
	if fnoOnly && kind == entity.KindStock && (g.catalog == nil || !g.catalog.IsFnoEligible(symbol)) {
		return nil, fmt.Errorf("%w: symbol %s not F&O eligible", domain.ErrInvalidRequest, symbol)
	}

	key := entity.NewCacheKey(kind, symbol, from, to)

	// 2) キャッシュ参照
	if records, ok := g.lookup(ctx, key); ok {
		return records, nil
	}

	// 3) 上流から取得
	rows, err := g.source.Fetch(ctx, symbol, from, to, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s %s %s..%s: %w",
			domain.ErrUpstream, kind, symbol, from.Format(entity.DateLayout), to.Format(entity.DateLayout), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %s between %s and %s",
			domain.ErrNotFound, kind, symbol, from.Format(entity.DateLayout), to.Format(entity.DateLayout))
	}

	// 4) 正規化
	records, err := normalize.Normalize(rows, kind, symbol)
	if err != nil {
		slog.Error("upstream rows did not match a known layout", "kind", kind, "symbol", symbol, "error", err)
		return nil, err
	}

	// 5) キャッシュ保存（ベストエフォート）
	g.remember(ctx, key, records)

	return records, nil
}

// lookup reads the cache. Cache failures and undecodable entries are logged
// and reported as a miss; this is the only place read errors are discarded.
func (g *Gateway) lookup(ctx context.Context, key entity.CacheKey) ([]entity.Record, bool) {
	b, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed; treating as miss", "key", key.String(), "error", err)
		return nil, false
	}
	if !ok {
		slog.Debug("cache miss", "key", key.String())
		return nil, false
	}
	records, err := entity.DecodeRecords(b, key.Kind)
	if err != nil {
		slog.Warn("corrupt cache entry; refetching", "key", key.String(), "error", err)
		return nil, false
	}
	if records[0].Symbol != key.Symbol {
		slog.Warn("cache entry symbol mismatch; refetching", "key", key.String(), "symbol", records[0].Symbol)
		return nil, false
	}
	slog.Debug("cache hit", "key", key.String(), "records", len(records))
	return records, true
}

// remember writes records to the cache. Write failures are logged and dropped;
// this is the only place write errors are discarded.
func (g *Gateway) remember(ctx context.Context, key entity.CacheKey, records []entity.Record) {
	b, err := entity.EncodeRecords(records)
	if err != nil {
		slog.Warn("encode records for cache failed", "key", key.String(), "error", err)
		return
	}
	if err := g.cache.Put(ctx, key, b); err != nil {
		slog.Warn("cache write failed", "key", key.String(), "error", err)
	}
}
