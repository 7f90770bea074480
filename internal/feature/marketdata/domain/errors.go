// Package domain defines domain-level errors for the marketdata feature.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// Error kinds surfaced by the gateway. Callers test them with errors.Is;
// the transport layer maps each one to a status code.
var (
	// ErrInvalidRequest indicates malformed input: empty symbol, reversed dates,
	// or a symbol outside the F&O list when the request is restricted to it.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates the upstream returned zero rows for a valid request.
	ErrNotFound = errors.New("no records found")

	// ErrSchemaMismatch indicates upstream rows matched none of the known column layouts.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUpstream indicates the market data source itself failed.
	ErrUpstream = errors.New("upstream error")
)

// SchemaMismatchError carries the column names that failed to match a layout.
type SchemaMismatchError struct {
	Kind    entity.Kind
	Columns []string
	Detail  string
}

func (e *SchemaMismatchError) Error() string {
	msg := fmt.Sprintf("schema mismatch for %s rows: columns [%s]", e.Kind, strings.Join(e.Columns, ", "))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrSchemaMismatch) succeed.
func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
