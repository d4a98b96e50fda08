// Package domain provides core domain models and types.
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Ticker identifies a traded security, e.g. "AAPL".
type Ticker string

// ModelTag names a forecasting method whose predictions populate a derived
// column, e.g. "arima" in "AAPL_arima".
type ModelTag string

// NullFloat is a nullable numeric cell of a wide table.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat holding v. NaN and ±Inf are not values
// and yield Null.
func Float(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null()
	}
	return NullFloat{Float64: v, Valid: true}
}

// Null returns an invalid (missing) NullFloat.
func Null() NullFloat {
	return NullFloat{}
}

// MarshalJSON encodes missing values as null so gaps render as gaps.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

// LongSeriesPoint is one (timestamp, series label, value) triple of a
// long-format series. Before presentation formatting the label holds the raw
// column name and the timestamp holds the raw calendar date.
type LongSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Value     NullFloat `json:"value"`
}

// MetricKind is a forecast accuracy metric.
type MetricKind string

const (
	// MetricRMSE is the root mean squared error
	MetricRMSE MetricKind = "RMSE"
	// MetricMAE is the mean absolute error
	MetricMAE MetricKind = "MAE"
)

// AllMetricKinds lists the supported metrics in display order.
var AllMetricKinds = []MetricKind{MetricRMSE, MetricMAE}

// MetricResult is the accuracy of one model's predictions for one ticker.
// Value is unrounded; rounding happens when messages are built.
type MetricResult struct {
	Ticker   Ticker     `json:"ticker"`
	ModelTag ModelTag   `json:"model_tag"`
	Kind     MetricKind `json:"metric"`
	Value    float64    `json:"value"`
	Samples  int        `json:"samples"` // aligned, non-null rows used
}

// OptimizationPoint is a (risk, return) pair.
type OptimizationPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OptimizationSeries is one named plot series of the optimization surface.
type OptimizationSeries struct {
	Name   string              `json:"name"`
	Points []OptimizationPoint `json:"points"`
}

// PortfolioWeight is the allocation of one ticker in the optimum portfolio.
// Percent may be negative (short) or exceed 100 (leverage).
type PortfolioWeight struct {
	Ticker  Ticker  `json:"ticker"`
	Percent float64 `json:"percent"`
}

// OptimizationSummary describes the chosen optimum portfolio.
type OptimizationSummary struct {
	Weights          []PortfolioWeight `json:"weights"`
	DateFrom         string            `json:"date_from"`
	DateTo           string            `json:"date_to"`
	AnnualizedReturn float64           `json:"annualized_return"`
	Risk             float64           `json:"risk"`
}
