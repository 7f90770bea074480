// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ohlcv_gateway/internal/feature/marketdata/domain"
	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/transport/http/dto"
)

// RecordFetcher はOHLCVレコード取得のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RecordFetcher interface {
	FetchStockRecords(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error)
	FetchIndexRecords(ctx context.Context, symbol string, from, to time.Time) ([]entity.Record, error)
}

// RecordHandler は日足データのHTTPリクエストを処理します。
type RecordHandler struct {
	uc RecordFetcher
}

// NewRecordHandler は指定されたusecaseでRecordHandlerの新しいインスタンスを生成します。
func NewRecordHandler(uc RecordFetcher) *RecordHandler {
	return &RecordHandler{uc: uc}
}

// GetStockData は株式の日足データをJSONで返します。
//
// エンドポイント例:
// GET /stock-data?symbol=INFY&start=2022-01-01&end=2022-01-31&fno_only=true
func (h *RecordHandler) GetStockData(c *gin.Context) {
	var q dto.StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("stock-data query validation failed", "error", err, "query", c.Request.URL.RawQuery)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid query: symbol, start and end (YYYY-MM-DD) are required"})
		return
	}

	records, err := h.uc.FetchStockRecords(c.Request.Context(), q.Symbol, q.Start, q.End, q.FnoOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(records))
}

// GetIndexData は指数の日足データをJSONで返します。
//
// エンドポイント例:
// GET /index-data?symbol=NIFTY%2050&start=2022-01-01&end=2022-01-31
func (h *RecordHandler) GetIndexData(c *gin.Context) {
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("index-data query validation failed", "error", err, "query", c.Request.URL.RawQuery)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid query: symbol, start and end (YYYY-MM-DD) are required"})
		return
	}

	records, err := h.uc.FetchIndexRecords(c.Request.Context(), q.Symbol, q.Start, q.End)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(records))
}

// writeError はドメインエラーをHTTPステータスに変換して返します。
func writeError(c *gin.Context, err error) {
	var mismatch *domain.SchemaMismatchError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error(), Columns: mismatch.Columns})
	case errors.Is(err, domain.ErrUpstream):
		slog.Error("upstream failure", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("unexpected error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func toResponse(records []entity.Record) []dto.RecordResponse {
	out := make([]dto.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.RecordResponse{
			Date:   r.Date.UTC().Format(entity.DateLayout),
			Symbol: r.Symbol,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return out
}
