package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fuzzysystem/finance/internal/domain"
)

// HistoryRecord is one trading day of one symbol as found in *_history.json
// dumps. Only the adjusted close is used.
type HistoryRecord struct {
	Date     string  `json:"date"`
	Symbol   string  `json:"symbol"`
	AdjClose float64 `json:"adj_close"`
}

// ReadHistoryJSON loads every file matching pattern (a glob of
// *_history.json files) and pivots the adjusted closes into an actual-only
// wide table, one column per symbol.
func ReadHistoryJSON(pattern string, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid history pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no history files match %q", pattern)
	}
	sort.Strings(paths)

	var records []HistoryRecord
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var days []HistoryRecord
		if err := json.Unmarshal(data, &days); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		records = append(records, days...)
	}

	return PivotCloses(records, opts)
}

// PivotCloses turns per-symbol daily records into a wide table: one row per
// date (ascending), one column per symbol in first-seen order. Days on which a
// symbol did not trade are nulls.
func PivotCloses(records []HistoryRecord, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	var symbols []string
	symbolIdx := make(map[string]int)
	byDate := make(map[time.Time][]domain.NullFloat)

	for _, rec := range records {
		if rec.Symbol == "" {
			return nil, fmt.Errorf("%w: history record on %s has no symbol", domain.ErrMalformedTable, rec.Date)
		}
		date, err := parseDate(rec.Date, opts.DateLayout)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, rec.Symbol, err)
		}

		idx, ok := symbolIdx[rec.Symbol]
		if !ok {
			idx = len(symbols)
			symbolIdx[rec.Symbol] = idx
			symbols = append(symbols, rec.Symbol)
		}

		cells := byDate[date]
		for len(cells) <= idx {
			cells = append(cells, domain.Null())
		}
		cells[idx] = domain.Float(rec.AdjClose)
		byDate[date] = cells
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]domain.Row, len(dates))
	for i, d := range dates {
		cells := byDate[d]
		for len(cells) < len(symbols) {
			cells = append(cells, domain.Null())
		}
		rows[i] = domain.Row{Date: d, Cells: cells}
	}

	return domain.NewWideTable(symbols, rows, opts.Separator)
}
