package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultSeparator splits a derived column name into ticker and model tag.
const DefaultSeparator = "_"

// Row is one dated row of a wide table, with one cell per table column.
type Row struct {
	Date  time.Time
	Cells []NullFloat
}

// WideTable holds one row per calendar date and one column per ticker
// (actual values) and per ticker-model pair (predictions). It is immutable
// once built; accessors return copies.
type WideTable struct {
	columns []string
	dates   []time.Time
	values  map[string][]NullFloat
	schema  Schema
}

// NewWideTable validates rows against columns and builds the table together
// with its schema descriptor. Rows keep their input order.
func NewWideTable(columns []string, rows []Row, separator string) (*WideTable, error) {
	if separator == "" {
		separator = DefaultSeparator
	}

	values := make(map[string][]NullFloat, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: empty column name", ErrMalformedTable)
		}
		if _, dup := values[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedTable, c)
		}
		values[c] = make([]NullFloat, len(rows))
	}

	schema, err := buildSchema(columns, separator)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(rows))
	seen := make(map[time.Time]struct{}, len(rows))
	for i, row := range rows {
		if len(row.Cells) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedTable, i, len(row.Cells), len(columns))
		}
		date := CalendarDate(row.Date)
		if _, dup := seen[date]; dup {
			return nil, fmt.Errorf("%w: duplicate date %s", ErrMalformedTable, date.Format("2006-01-02"))
		}
		seen[date] = struct{}{}
		dates[i] = date
		for j, c := range columns {
			cell := row.Cells[j]
			if cell.Valid {
				cell = Float(cell.Float64)
			}
			values[c][i] = cell
		}
	}

	return &WideTable{
		columns: append([]string(nil), columns...),
		dates:   dates,
		values:  values,
		schema:  schema,
	}, nil
}

// CalendarDate truncates t to its calendar date at midnight UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Len returns the number of rows.
func (t *WideTable) Len() int {
	return len(t.dates)
}

// Columns returns the value column names (the date column excluded).
func (t *WideTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Dates returns the row dates in table order.
func (t *WideTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Column returns a copy of the named column's cells.
func (t *WideTable) Column(name string) ([]NullFloat, bool) {
	cells, ok := t.values[name]
	if !ok {
		return nil, false
	}
	return append([]NullFloat(nil), cells...), true
}

// Schema returns the ticker/model descriptor built at construction time.
func (t *WideTable) Schema() Schema {
	return t.schema
}

// Schema maps each base ticker to the model tags that have a prediction
// column for it.
type Schema struct {
	separator string
	tickers   []Ticker
	tags      map[Ticker][]ModelTag
}

func buildSchema(columns []string, separator string) (Schema, error) {
	s := Schema{
		separator: separator,
		tags:      make(map[Ticker][]ModelTag),
	}

	for _, c := range columns {
		if !strings.Contains(c, separator) {
			s.tags[Ticker(c)] = nil
			s.tickers = append(s.tickers, Ticker(c))
		}
	}

	for _, c := range columns {
		prefix, tag, derived := strings.Cut(c, separator)
		if !derived {
			continue
		}
		ticker := Ticker(prefix)
		if _, ok := s.tags[ticker]; !ok || tag == "" {
			return Schema{}, fmt.Errorf("%w: column %q has no base ticker column", ErrMalformedTable, c)
		}
		s.tags[ticker] = append(s.tags[ticker], ModelTag(tag))
	}

	sort.Slice(s.tickers, func(i, j int) bool { return s.tickers[i] < s.tickers[j] })
	return s, nil
}

// Separator returns the ticker/model-tag delimiter.
func (s Schema) Separator() string {
	return s.separator
}

// Tickers returns the base tickers, sorted.
func (s Schema) Tickers() []Ticker {
	return append([]Ticker(nil), s.tickers...)
}

// HasTicker reports whether ticker is a base column.
func (s Schema) HasTicker(ticker Ticker) bool {
	_, ok := s.tags[ticker]
	return ok
}

// Tags returns the model tags registered for ticker, in column order.
func (s Schema) Tags(ticker Ticker) []ModelTag {
	return append([]ModelTag(nil), s.tags[ticker]...)
}

// HasTag reports whether ticker has a prediction column for tag.
func (s Schema) HasTag(ticker Ticker, tag ModelTag) bool {
	for _, t := range s.tags[ticker] {
		if t == tag {
			return true
		}
	}
	return false
}

// Column returns the column name holding tag's predictions for ticker.
func (s Schema) Column(ticker Ticker, tag ModelTag) string {
	return string(ticker) + s.separator + string(tag)
}
