package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/usecase"
	"ohlcv_gateway/internal/shared/ratelimiter"
)

// Client は表形式JSONを返すデータサービスから生の行を取得するMarketDataSource実装です。
// 行は加工せずにそのまま返します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var _ usecase.MarketDataSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Fetch は /stock-data または /index-data を呼び出し、JSON配列の各要素を1行として返します。
func (c *Client) Fetch(ctx context.Context, symbol string, from, to time.Time, kind entity.Kind) ([]entity.RawRow, error) {
	var path string
	switch kind {
	case entity.KindStock:
		path = "/stock-data"
	case entity.KindIndex:
		path = "/index-data"
	default:
		return nil, fmt.Errorf("bridge: unsupported kind %q", kind)
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start", from.Format(entity.DateLayout))
	q.Set("end", to.Format(entity.DateLayout))
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("bridge http %d", res.StatusCode)
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	var rows []entity.RawRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("bridge: decode response: %w", err)
	}
	return rows, nil
}
