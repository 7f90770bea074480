// Package usecase implements the F&O symbol catalog.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// SymbolSource loads the raw F&O symbol list from a reference table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolSource interface {
	LoadSymbols(ctx context.Context) ([]string, error)
}

// SymbolCatalog is the read-only set of F&O eligible symbols.
// It is loaded once and safe for concurrent use afterwards.
type SymbolCatalog struct {
	set    map[string]struct{}
	sorted []string
}

// NewSymbolCatalog loads symbols from src, uppercasing and de-duplicating them.
func NewSymbolCatalog(ctx context.Context, src SymbolSource) (*SymbolCatalog, error) {
	raw, err := src.LoadSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load F&O symbols: %w", err)
	}
	c := NewSymbolCatalogFromList(raw)
	slog.Info("F&O symbol catalog loaded", "count", len(c.sorted))
	return c, nil
}

// NewSymbolCatalogFromList builds a catalog from an in-memory list.
func NewSymbolCatalogFromList(symbols []string) *SymbolCatalog {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = normalizeSymbol(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for s := range set {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	return &SymbolCatalog{set: set, sorted: sorted}
}

// IsFnoEligible reports whether symbol is in the F&O list. Matching is case-insensitive.
func (c *SymbolCatalog) IsFnoEligible(symbol string) bool {
	_, ok := c.set[normalizeSymbol(symbol)]
	return ok
}

// List returns the symbols in ascending order.
func (c *SymbolCatalog) List() []string {
	out := make([]string, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Len returns the number of symbols in the catalog.
func (c *SymbolCatalog) Len() int {
	return len(c.sorted)
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
