// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolListResponse is the body of the symbol listing endpoints.
type SymbolListResponse struct {
	Count   int      `json:"count"`
	Symbols []string `json:"symbols"`
}
