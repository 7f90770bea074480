package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
	"ohlcv_gateway/internal/feature/marketdata/usecase"
)

// mockStockFetcher はStockFetcherインターフェースのモック実装です。
type mockStockFetcher struct {
	FetchStockRecordsFunc  func(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error)
	FetchStockRecordsCalls int
	Symbols                []string
}

func (m *mockStockFetcher) FetchStockRecords(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error) {
	m.FetchStockRecordsCalls++
	m.Symbols = append(m.Symbols, symbol)
	if m.FetchStockRecordsFunc != nil {
		return m.FetchStockRecordsFunc(ctx, symbol, from, to, fnoOnly)
	}
	return nil, errors.New("FetchStockRecordsFunc is not implemented")
}

// TestWarmupUsecase_WarmAll は失敗した銘柄があっても残りの銘柄を処理し続けることを検証します。
func TestWarmupUsecase_WarmAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		symbols       []string
		failOn        map[string]bool
		wantSucceeded int
		wantFailed    int
	}{
		{"all succeed", []string{"INFY", "TCS"}, nil, 2, 0},
		{"one failure does not stop the run", []string{"INFY", "BAD", "TCS"}, map[string]bool{"BAD": true}, 2, 1},
		{"all fail", []string{"A", "B"}, map[string]bool{"A": true, "B": true}, 0, 2},
		{"no symbols", nil, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fetcher := &mockStockFetcher{
				FetchStockRecordsFunc: func(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error) {
					assert.True(t, fnoOnly, "warmup only covers F&O symbols")
					assert.Equal(t, jan1, from)
					assert.Equal(t, jan15, to)
					if tt.failOn[symbol] {
						return nil, ErrNetwork
					}
					return []entity.Record{{Symbol: symbol}}, nil
				},
			}

			res, err := usecase.NewWarmupUsecase(fetcher).WarmAll(context.Background(), tt.symbols, jan1, jan15)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSucceeded, res.Succeeded)
			assert.Equal(t, tt.wantFailed, res.Failed)
			assert.Equal(t, len(tt.symbols), fetcher.FetchStockRecordsCalls)
		})
	}
}

// TestWarmupUsecase_Canceled はキャンセル後は次の銘柄に進まないことを検証します。
func TestWarmupUsecase_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &mockStockFetcher{
		FetchStockRecordsFunc: func(ctx context.Context, symbol string, from, to time.Time, fnoOnly bool) ([]entity.Record, error) {
			cancel()
			return []entity.Record{{Symbol: symbol}}, nil
		},
	}

	res, err := usecase.NewWarmupUsecase(fetcher).WarmAll(ctx, []string{"INFY", "TCS", "WIPRO"}, jan1, jan15)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, []string{"INFY"}, fetcher.Symbols)
}
