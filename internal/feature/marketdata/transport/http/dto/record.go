package dto

import "time"

// RangeQuery は銘柄と期間を指定するクエリパラメータです。
type RangeQuery struct {
	Symbol string    `form:"symbol" binding:"required"`
	Start  time.Time `form:"start" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	End    time.Time `form:"end" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

// StockQuery は /stock-data のクエリパラメータです。
type StockQuery struct {
	RangeQuery
	FnoOnly bool `form:"fno_only"`
}

// RecordResponse は日足1本分のレスポンスDTOです。
type RecordResponse struct {
	Date   string  `json:"date"`             // 日付 (YYYY-MM-DD)
	Symbol string  `json:"symbol"`           // 銘柄コード
	Open   float64 `json:"open"`             // 始値
	High   float64 `json:"high"`             // 高値
	Low    float64 `json:"low"`              // 安値
	Close  float64 `json:"close"`            // 終値
	Volume *int64  `json:"volume,omitempty"` // 出来高（指数では省略されることがある）
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error   string   `json:"error"`
	Columns []string `json:"columns,omitempty"` // スキーマ不一致時に上流から受け取った列名
}

// MessageResponse は単純なメッセージのレスポンスDTOです。
type MessageResponse struct {
	Message string `json:"message"`
}
