// Package entity defines the domain models for the marketdata feature.
package entity

import (
	"fmt"
	"time"
)

// DateLayout is the canonical ISO 8601 calendar date form used on the wire and in cache keys.
const DateLayout = "2006-01-02"

// Kind distinguishes stock records from index records.
type Kind string

const (
	KindStock Kind = "stock"
	KindIndex Kind = "index"
)

// Valid reports whether k is one of the known record kinds.
func (k Kind) Valid() bool {
	return k == KindStock || k == KindIndex
}

// Record is one trading-day OHLCV observation for a symbol.
type Record struct {
	Date   time.Time // Calendar date (UTC midnight)
	Symbol string    // Uppercase instrument identifier (e.g., "INFY", "NIFTY 50")
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume *int64    // Traded quantity; nil for indices
}

// RawRow is an upstream row keyed by column name, before normalization.
type RawRow map[string]any

// CacheKey identifies one exact (kind, symbol, range) result set.
type CacheKey struct {
	Kind   Kind
	Symbol string
	From   time.Time
	To     time.Time
}

// NewCacheKey builds a CacheKey with dates truncated to calendar days.
func NewCacheKey(kind Kind, symbol string, from, to time.Time) CacheKey {
	return CacheKey{Kind: kind, Symbol: symbol, From: DateOf(from), To: DateOf(to)}
}

// String renders the key as kind:SYMBOL:from:to.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.Kind, k.Symbol, k.From.Format(DateLayout), k.To.Format(DateLayout))
}

// DateOf returns the calendar date of t at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
