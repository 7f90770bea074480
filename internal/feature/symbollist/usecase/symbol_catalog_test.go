package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohlcv_gateway/internal/feature/symbollist/usecase"
)

// mockSymbolSource はSymbolSourceインターフェースのモック実装です。
type mockSymbolSource struct {
	LoadSymbolsFunc  func(ctx context.Context) ([]string, error)
	LoadSymbolsCalls int
}

// LoadSymbols はモックのLoadSymbols関数を呼び出し、呼び出し回数を記録します。
func (m *mockSymbolSource) LoadSymbols(ctx context.Context) ([]string, error) {
	m.LoadSymbolsCalls++
	if m.LoadSymbolsFunc != nil {
		return m.LoadSymbolsFunc(ctx)
	}
	return nil, nil
}

// TestNewSymbolCatalog はシンボルが大文字化・重複排除されて一度だけ読み込まれることを検証します。
func TestNewSymbolCatalog(t *testing.T) {
	t.Parallel()

	src := &mockSymbolSource{
		LoadSymbolsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"infy", " TCS ", "INFY", "", "  ", "Reliance"}, nil
		},
	}

	c, err := usecase.NewSymbolCatalog(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 1, src.LoadSymbolsCalls)
	assert.Equal(t, []string{"INFY", "RELIANCE", "TCS"}, c.List())
	assert.Equal(t, 3, c.Len())
}

func TestNewSymbolCatalog_SourceError(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("file not found")
	src := &mockSymbolSource{
		LoadSymbolsFunc: func(ctx context.Context) ([]string, error) { return nil, loadErr },
	}

	c, err := usecase.NewSymbolCatalog(context.Background(), src)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, loadErr)
}

// TestSymbolCatalog_IsFnoEligible は大文字小文字を区別せずに判定することを検証します。
func TestSymbolCatalog_IsFnoEligible(t *testing.T) {
	t.Parallel()

	c := usecase.NewSymbolCatalogFromList([]string{"INFY", "M&M", "BAJAJ-AUTO"})

	tests := []struct {
		symbol string
		want   bool
	}{
		{"INFY", true},
		{"infy", true},
		{" Infy ", true},
		{"M&M", true},
		{"bajaj-auto", true},
		{"ZZZZ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.IsFnoEligible(tt.symbol))
		})
	}
}

// TestSymbolCatalog_ListIsCopy は返却されたスライスを変更してもカタログに影響しないことを検証します。
func TestSymbolCatalog_ListIsCopy(t *testing.T) {
	t.Parallel()

	c := usecase.NewSymbolCatalogFromList([]string{"INFY"})
	l := c.List()
	l[0] = "HACKED"

	assert.Equal(t, []string{"INFY"}, c.List())
	assert.True(t, c.IsFnoEligible("INFY"))
}
