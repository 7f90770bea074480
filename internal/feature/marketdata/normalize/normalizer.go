// Package normalize maps upstream OHLCV rows onto entity.Record.
//
// Two column layouts are accepted. The prefixed layout uses the upstream's own
// column identifiers (CH_* for equities, EOD_* for indices); the simple layout
// already uses the canonical names. The prefixed layout is always tried first.
// A layout either matches completely or the rows are rejected.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"ohlcv_gateway/internal/feature/marketdata/domain"
	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// Layout identifies which known column set a batch of rows uses.
type Layout int

const (
	LayoutPrefixed Layout = iota + 1
	LayoutSimple
)

func (l Layout) String() string {
	switch l {
	case LayoutPrefixed:
		return "prefixed"
	case LayoutSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// columns names the upstream column for each canonical field.
// An empty Volume means the layout carries no volume.
type columns struct {
	Date, Open, High, Low, Close, Volume string
	// VolumeOptional allows Volume to be absent from the rows.
	VolumeOptional bool
}

func (c columns) required() []string {
	req := []string{c.Date, c.Open, c.High, c.Low, c.Close}
	if c.Volume != "" && !c.VolumeOptional {
		req = append(req, c.Volume)
	}
	return req
}

var layouts = map[entity.Kind]map[Layout]columns{
	entity.KindStock: {
		LayoutPrefixed: {
			Date:   "CH_TIMESTAMP",
			Open:   "CH_OPENING_PRICE",
			High:   "CH_TRADE_HIGH_PRICE",
			Low:    "CH_TRADE_LOW_PRICE",
			Close:  "CH_CLOSING_PRICE",
			Volume: "CH_TOT_TRADED_QTY",
		},
		LayoutSimple: {
			Date: "DATE", Open: "OPEN", High: "HIGH", Low: "LOW", Close: "CLOSE", Volume: "VOLUME",
		},
	},
	entity.KindIndex: {
		LayoutPrefixed: {
			Date:  "EOD_TIMESTAMP",
			Open:  "EOD_OPEN_INDEX_VAL",
			High:  "EOD_HIGH_INDEX_VAL",
			Low:   "EOD_LOW_INDEX_VAL",
			Close: "EOD_CLOSE_INDEX_VAL",
		},
		LayoutSimple: {
			Date: "DATE", Open: "OPEN", High: "HIGH", Low: "LOW", Close: "CLOSE", Volume: "VOLUME",
			VolumeOptional: true,
		},
	},
}

// Columns returns the sorted, uppercased union of column names across rows.
func Columns(rows []entity.RawRow) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, row := range rows {
		for name := range row {
			n := strings.ToUpper(strings.TrimSpace(name))
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Detect picks the layout whose full column set is present in cols.
func Detect(cols []string, kind entity.Kind) (Layout, error) {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[strings.ToUpper(c)] = struct{}{}
	}
	for _, l := range []Layout{LayoutPrefixed, LayoutSimple} {
		lc, ok := layouts[kind][l]
		if !ok {
			continue
		}
		if hasAll(set, lc.required()) {
			return l, nil
		}
	}
	return 0, &domain.SchemaMismatchError{Kind: kind, Columns: cols}
}

func hasAll(set map[string]struct{}, names []string) bool {
	for _, n := range names {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

// Normalize converts raw rows into records for symbol, sorted by ascending date.
// Rows sharing a date keep the first occurrence.
func Normalize(rows []entity.RawRow, kind entity.Kind, symbol string) ([]entity.Record, error) {
	cols := Columns(rows)
	layout, err := Detect(cols, kind)
	if err != nil {
		return nil, err
	}
	lc := layouts[kind][layout]

	mismatch := func(format string, args ...any) error {
		return &domain.SchemaMismatchError{Kind: kind, Columns: cols, Detail: fmt.Sprintf(format, args...)}
	}

	out := make([]entity.Record, 0, len(rows))
	for i, raw := range rows {
		row, err := upperKeys(raw)
		if err != nil {
			return nil, mismatch("row %d: %v", i, err)
		}

		d, err := parseDate(row[lc.Date])
		if err != nil {
			return nil, mismatch("row %d: %s: %v", i, lc.Date, err)
		}

		rec := entity.Record{Date: d, Symbol: symbol}
		prices := []struct {
			col string
			dst *float64
		}{
			{lc.Open, &rec.Open},
			{lc.High, &rec.High},
			{lc.Low, &rec.Low},
			{lc.Close, &rec.Close},
		}
		for _, p := range prices {
			v, err := parseFloat(row[p.col])
			if err != nil {
				return nil, mismatch("row %d: %s: %v", i, p.col, err)
			}
			*p.dst = v
		}

		if lc.Volume != "" {
			if v, ok := row[lc.Volume]; ok && v != nil {
				vol, err := parseVolume(v)
				if err != nil {
					return nil, mismatch("row %d: %s: %v", i, lc.Volume, err)
				}
				rec.Volume = &vol
			} else if !lc.VolumeOptional {
				return nil, mismatch("row %d: %s: missing value", i, lc.Volume)
			}
		}

		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for _, r := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Date.Equal(r.Date) {
			continue
		}
		dedup = append(dedup, r)
	}
	return dedup, nil
}

// upperKeys canonicalizes column names. Two keys that differ only by case or
// surrounding space are rejected, since either value could win otherwise.
func upperKeys(row entity.RawRow) (map[string]any, error) {
	m := make(map[string]any, len(row))
	for k, v := range row {
		n := strings.ToUpper(strings.TrimSpace(k))
		if _, dup := m[n]; dup {
			return nil, fmt.Errorf("column %s appears more than once", n)
		}
		m[n] = v
	}
	return m, nil
}

// dateLayouts are the date renderings seen from the upstream sources.
var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"02 Jan 2006",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected date value %v (%T)", v, v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseFloat(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case int:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, err
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 64)
		if err != nil {
			return 0, err
		}
		f = p
	default:
		return 0, fmt.Errorf("unexpected numeric value %v (%T)", v, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid value %v", f)
	}
	return f, nil
}

func parseVolume(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		if x < 0 {
			return 0, fmt.Errorf("invalid value %d", x)
		}
		return x, nil
	case int:
		if x < 0 {
			return 0, fmt.Errorf("invalid value %d", x)
		}
		return int64(x), nil
	case json.Number:
		// 整数表記なら精度を落とさずに読む
		if n, err := x.Int64(); err == nil {
			if n < 0 {
				return 0, fmt.Errorf("invalid value %d", n)
			}
			return n, nil
		}
	}

	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt64) は 2^63 に丸められるため >= で判定する
	if f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, fmt.Errorf("volume %v is not an int64", f)
	}
	return int64(f), nil
}
