package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/usecase"
	"ohlcv_gateway/internal/shared/ratelimiter"
)

const (
	stockPath = "/api/historical/cm/equity"
	indexPath = "/api/historical/indicesHistory"

	// queryDateLayout はNSE APIが受け付ける日付形式（DD-MM-YYYY）です。
	queryDateLayout = "02-01-2006"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// stockResponse は株式ヒストリカルAPIのレスポンスです。
type stockResponse struct {
	Data []entity.RawRow `json:"data"`
}

// indexResponse は指数ヒストリカルAPIのレスポンスです。
type indexResponse struct {
	Data struct {
		IndexCloseOnlineRecords []entity.RawRow `json:"indexCloseOnlineRecords"`
	} `json:"data"`
}

// Client はNSEのヒストリカルAPIから生の行を取得するMarketDataSource実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter

	// primeSem は同時に1つのプライミングだけを許可します。
	primeSem chan struct{}
	primed   atomic.Bool
}

// ClientがMarketDataSourceを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataSource = (*Client)(nil)

// NewClient は指定された設定でClientを生成します。
// client にはCookieJarを持つものを渡すこと（セッションCookieが必要なため）。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if cfg.ChunkDays <= 0 {
		cfg.ChunkDays = defaultChunkDays
	}
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, primeSem: make(chan struct{}, 1)}
}

// Fetch は期間を ChunkDays ごとの区間に分割し、順番に取得して行を連結します。
// 行の順序は上流のままです（並べ替えは正規化で行う）。
func (c *Client) Fetch(ctx context.Context, symbol string, from, to time.Time, kind entity.Kind) ([]entity.RawRow, error) {
	if err := c.prime(ctx); err != nil {
		return nil, err
	}

	var rows []entity.RawRow
	for _, w := range chunk(from, to, c.cfg.ChunkDays) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := c.fetchWindow(ctx, symbol, w.from, w.to, kind)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	return rows, nil
}

func (c *Client) fetchWindow(ctx context.Context, symbol string, from, to time.Time, kind entity.Kind) ([]entity.RawRow, error) {
	q := url.Values{}
	var path string
	switch kind {
	case entity.KindStock:
		path = stockPath
		q.Set("symbol", symbol)
		q.Set("series", `["EQ"]`)
	case entity.KindIndex:
		path = indexPath
		q.Set("indexType", symbol)
	default:
		return nil, fmt.Errorf("nse: unsupported kind %q", kind)
	}
	q.Set("from", from.Format(queryDateLayout))
	q.Set("to", to.Format(queryDateLayout))

	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	res, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("nse http %d", res.StatusCode)
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()

	if kind == entity.KindIndex {
		var body indexResponse
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("nse: decode index response: %w", err)
		}
		return body.Data.IndexCloseOnlineRecords, nil
	}
	var body stockResponse
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("nse: decode stock response: %w", err)
	}
	return body.Data, nil
}

// prime はサイトのトップページを取得してセッションCookieを受け取ります。
// 成功するまで各Fetchの先頭で試行し、失敗してもAPI呼び出しは続行します。
// 他の呼び出しがプライミング中の場合は ctx が切れるまで待ちます。
// 返すエラーは ctx のエラーのみです。
func (c *Client) prime(ctx context.Context) error {
	if c.primed.Load() {
		return nil
	}
	select {
	case c.primeSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.primeSem }()

	// 待っている間に別の呼び出しが成功している場合がある
	if c.primed.Load() {
		return nil
	}

	res, err := c.do(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		slog.Warn("nse session priming failed", "error", err)
		return nil
	}
	_ = res.Body.Close()
	if res.StatusCode >= 400 {
		slog.Warn("nse session priming failed", "status", res.StatusCode)
		return nil
	}
	c.primed.Store(true)
	slog.Debug("nse session primed")
	return nil
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", strings.TrimRight(c.cfg.BaseURL, "/")+"/")
	return c.client.Do(req)
}

type window struct {
	from, to time.Time
}

// chunk は [from, to] を最大 days 日の連続した区間に分割します。
func chunk(from, to time.Time, days int) []window {
	var out []window
	for start := from; !start.After(to); {
		end := start.AddDate(0, 0, days-1)
		if end.After(to) {
			end = to
		}
		out = append(out, window{from: start, to: end})
		start = end.AddDate(0, 0, 1)
	}
	return out
}
