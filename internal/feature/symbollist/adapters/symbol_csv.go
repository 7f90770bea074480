// Package adapters はsymbollistフィーチャーのSymbolSource実装を提供します。
package adapters

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ohlcv_gateway/internal/feature/symbollist/usecase"
)

// symbolColumn は参照テーブルで銘柄コードを持つ列名です。
const symbolColumn = "SYMBOL"

// symbolCSV はCSV形式の参照テーブル（NSE fo_mktlots.csv 等）から銘柄を読み込みます。
type symbolCSV struct {
	path string
}

var _ usecase.SymbolSource = (*symbolCSV)(nil)

// NewSymbolCSV は指定されたパスのCSVを読むSymbolSourceを生成します。
func NewSymbolCSV(path string) *symbolCSV {
	return &symbolCSV{path: path}
}

// LoadSymbols はファイルを開いてSYMBOL列の値を返します。
func (s *symbolCSV) LoadSymbols(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadSymbols(f)
}

// ReadSymbols はヘッダー行を持つCSVからSYMBOL列を読み取ります。
// 列名は前後の空白を除去し大文字小文字を区別せずに照合します。
func ReadSymbols(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // 行ごとに列数が異なるファイルも許容
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("symbol table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), symbolColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("symbol table has no %s column", symbolColumn)
	}

	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if col >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[col]); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
