// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheStatus はキャッシュの動作モード（"redis"、"mongo"、"disabled"）を返します。
type CacheStatus interface {
	Mode() string
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを返します。
// キャッシュが無効でもサービスは動作するため、常に200を返し、モードのみ報告します。
func Health(cache CacheStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			mode := "disabled"
			if cache != nil {
				mode = cache.Mode()
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": mode})
		}
	}
}

// Root はサービス名を返すウェルカムエンドポイントです。
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the OHLCV gateway"})
}
