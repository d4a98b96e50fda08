// Package sources reads wide forecast tables and precomputed optimization
// results from files, SQLite databases and history dumps.
package sources

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fuzzysystem/finance/internal/domain"
)

// SQLiteScheme prefixes table locations stored in a SQLite file,
// e.g. sqlite://data/forecast.db?table=forecast.
const SQLiteScheme = "sqlite://"

// Options controls how a wide table is decoded.
type Options struct {
	DateColumn string // empty selects the first column
	DateLayout string
	Separator  string
}

func (o Options) withDefaults() Options {
	if o.DateLayout == "" {
		o.DateLayout = "2006-01-02"
	}
	if o.Separator == "" {
		o.Separator = domain.DefaultSeparator
	}
	return o
}

// ReadTable loads the wide table at location. The format is chosen from the
// location: sqlite:// URLs, .csv, .parquet, or a .json glob of history files.
func ReadTable(ctx context.Context, location string, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	if strings.HasPrefix(location, SQLiteScheme) {
		path, table, err := ParseSQLiteLocation(location)
		if err != nil {
			return nil, err
		}
		return ReadSQLite(ctx, path, table, opts)
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".csv":
		return ReadCSVFile(location, opts)
	case ".parquet":
		return ReadParquet(location, opts)
	case ".json":
		return ReadHistoryJSON(location, opts)
	default:
		return nil, fmt.Errorf("unsupported table source %q", location)
	}
}

// ParseSQLiteLocation splits a sqlite:// location into the database path and
// table name.
func ParseSQLiteLocation(location string) (path, table string, err error) {
	rest := strings.TrimPrefix(location, SQLiteScheme)
	path, query, _ := strings.Cut(rest, "?")
	if path == "" {
		return "", "", fmt.Errorf("sqlite location %q has no database path", location)
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return "", "", fmt.Errorf("sqlite location %q: %w", location, err)
	}
	table = values.Get("table")
	if table == "" {
		return "", "", fmt.Errorf("sqlite location %q has no table parameter", location)
	}
	return path, table, nil
}

// parseCell decodes a textual cell. Empty cells and NaN/null markers are nulls.
func parseCell(s string) (domain.NullFloat, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "na":
		return domain.Null(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Null(), err
	}
	return domain.Float(v), nil
}

// parseDate parses s with layout, falling back to RFC 3339 timestamps, and
// returns the calendar date.
func parseDate(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(layout, s)
	if err != nil {
		var fallbackErr error
		if t, fallbackErr = time.Parse(time.RFC3339, s); fallbackErr != nil {
			return time.Time{}, err
		}
	}
	return domain.CalendarDate(t), nil
}

// splitDateColumn returns the index of the date column and the data columns.
func splitDateColumn(header []string, dateColumn string) (int, []string, error) {
	if len(header) < 2 {
		return 0, nil, fmt.Errorf("%w: need a date column and at least one data column", domain.ErrMalformedTable)
	}

	idx := 0
	if dateColumn != "" {
		idx = -1
		for i, name := range header {
			if name == dateColumn {
				idx = i
				break
			}
		}
		if idx < 0 {
			return 0, nil, fmt.Errorf("%w: date column %q not found", domain.ErrMalformedTable, dateColumn)
		}
	}

	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != idx {
			columns = append(columns, name)
		}
	}
	return idx, columns, nil
}
