package adapters

import (
	"context"

	"gorm.io/gorm"

	"ohlcv_gateway/internal/feature/symbollist/domain/entity"
	"ohlcv_gateway/internal/feature/symbollist/usecase"
)

// symbolGorm はfno_symbolsテーブルを参照するSymbolSource実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolSource = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// LoadSymbols はアクティブな銘柄のコードを昇順で返します。
func (r *symbolGorm) LoadSymbols(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.FnoSymbol{}).
		Where("is_active = ?", true).
		Order("symbol ASC").
		Pluck("symbol", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
