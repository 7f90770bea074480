package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// recordJSON is the serialized shape of a Record, shared by the cache and the HTTP layer.
type recordJSON struct {
	Date   string  `json:"date"`
	Symbol string  `json:"symbol"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume *int64  `json:"volume,omitempty"`
}

// EncodeRecords serializes a record set for the cache.
func EncodeRecords(records []Record) ([]byte, error) {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, recordJSON{
			Date:   r.Date.Format(DateLayout),
			Symbol: r.Symbol,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return json.Marshal(out)
}

// DecodeRecords parses a cached record set and checks its shape:
// at least one record, a single symbol, strictly ascending dates,
// non-negative prices, and a non-negative volume on every stock record.
func DecodeRecords(b []byte, kind Kind) ([]Record, error) {
	var in []recordJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, errors.New("empty record set")
	}

	out := make([]Record, 0, len(in))
	for i, r := range in {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: parse date %q: %w", i, r.Date, err)
		}
		if r.Symbol == "" || r.Symbol != in[0].Symbol {
			return nil, fmt.Errorf("record %d: symbol %q does not match %q", i, r.Symbol, in[0].Symbol)
		}
		if i > 0 && !d.After(out[i-1].Date) {
			return nil, fmt.Errorf("record %d: date %s not after %s", i, r.Date, out[i-1].Date.Format(DateLayout))
		}
		if r.Open < 0 || r.High < 0 || r.Low < 0 || r.Close < 0 {
			return nil, fmt.Errorf("record %d: negative price", i)
		}
		if r.Volume != nil && *r.Volume < 0 {
			return nil, fmt.Errorf("record %d: negative volume %d", i, *r.Volume)
		}
		if kind == KindStock && r.Volume == nil {
			return nil, fmt.Errorf("record %d: stock record without volume", i)
		}
		out = append(out, Record{
			Date:   d,
			Symbol: r.Symbol,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return out, nil
}
