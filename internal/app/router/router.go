package router

import (
	"github.com/gin-gonic/gin"

	marketdatahandler "ohlcv_gateway/internal/feature/marketdata/transport/handler"
	symbollisthandler "ohlcv_gateway/internal/feature/symbollist/transport/handler"
	"ohlcv_gateway/internal/platform/http/handler"
	"ohlcv_gateway/internal/platform/http/middleware"
)

// NewRouter はすべてのルートを登録したginエンジンを返します。
func NewRouter(records *marketdatahandler.RecordHandler, symbols *symbollisthandler.SymbolHandler,
	cache handler.CacheStatus) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	// 導通確認用
	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health(cache))
	r.HEAD("/healthz", handler.Health(cache))

	// 銘柄一覧
	r.GET("/symbols/fno", symbols.ListFno)
	r.GET("/symbols/indexes", symbols.ListIndexes)

	// 日足データ
	r.GET("/stock-data", records.GetStockData)
	r.GET("/index-data", records.GetIndexData)

	return r
}
