package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/fuzzysystem/finance/internal/domain"
)

// Axis padding factors. They scale magnitudes, so a negative minimum moves
// toward zero and a negative maximum moves away from it.
const (
	lowerPadding = 0.9
	upperPadding = 1.1
)

// Range is a padded value range for chart axis scaling.
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// EstimateRange returns (0.9*min, 1.1*max) of values.
func EstimateRange(values []float64) (Range, error) {
	if len(values) == 0 {
		return Range{}, fmt.Errorf("%w: no values to estimate a range from", domain.ErrEmptyRange)
	}
	return Range{
		Lower: lowerPadding * floats.Min(values),
		Upper: upperPadding * floats.Max(values),
	}, nil
}

// RangeOf estimates the range of the non-null values of a series.
func RangeOf(points []domain.LongSeriesPoint) (Range, error) {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Value.Valid {
			values = append(values, p.Value.Float64)
		}
	}
	return EstimateRange(values)
}
