// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohlcv_gateway/internal/feature/symbollist/transport/http/dto"
)

// SymbolLister はF&O銘柄一覧を返すインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolLister interface {
	List() []string
}

// SymbolHandler は銘柄一覧に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	catalog SymbolLister
	indexes []string
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
// indexes は上流データソースが対応する指数名の一覧です。
func NewSymbolHandler(catalog SymbolLister, indexes []string) *SymbolHandler {
	return &SymbolHandler{catalog: catalog, indexes: indexes}
}

// ListFno はF&O対象銘柄の一覧を返します。
//
// エンドポイント例:
// GET /symbols/fno
func (h *SymbolHandler) ListFno(c *gin.Context) {
	c.JSON(http.StatusOK, newList(h.catalog.List()))
}

// ListIndexes は取得可能な指数名の一覧を返します。
//
// エンドポイント例:
// GET /symbols/indexes
func (h *SymbolHandler) ListIndexes(c *gin.Context) {
	c.JSON(http.StatusOK, newList(h.indexes))
}

func newList(symbols []string) dto.SymbolListResponse {
	if symbols == nil {
		symbols = []string{}
	}
	return dto.SymbolListResponse{Count: len(symbols), Symbols: symbols}
}
