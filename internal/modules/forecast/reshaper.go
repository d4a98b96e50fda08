// Package forecast turns wide forecast tables into presentation-ready
// long-format series.
package forecast

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/fuzzysystem/finance/internal/domain"
)

// valuePlaces is the rounding applied to reshaped values.
const valuePlaces = 2

// Reshape converts one ticker's columns of a wide table into long format:
// one point per (row, column) pair with the raw date as timestamp and the raw
// column name as label. Within a row the actual column comes first, followed
// by the model columns in schema order. Null cells are passed through.
func Reshape(table *domain.WideTable, ticker domain.Ticker) ([]domain.LongSeriesPoint, error) {
	schema := table.Schema()
	if !schema.HasTicker(ticker) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTicker, ticker)
	}

	columns := []string{string(ticker)}
	for _, tag := range schema.Tags(ticker) {
		columns = append(columns, schema.Column(ticker, tag))
	}

	cells := make([][]domain.NullFloat, len(columns))
	for i, name := range columns {
		cells[i], _ = table.Column(name)
	}

	dates := table.Dates()
	points := make([]domain.LongSeriesPoint, 0, len(dates)*len(columns))
	for row, date := range dates {
		for col, name := range columns {
			points = append(points, domain.LongSeriesPoint{
				Timestamp: date,
				Label:     name,
				Value:     Round(cells[col][row]),
			})
		}
	}

	return points, nil
}

// Round rounds a valid value to two decimal places, half away from zero.
// Non-finite values come back as null.
func Round(v domain.NullFloat) domain.NullFloat {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return domain.Null()
	}
	return domain.Float(decimal.NewFromFloat(v.Float64).Round(valuePlaces).InexactFloat64())
}
