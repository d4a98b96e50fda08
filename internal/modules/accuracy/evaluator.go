// Package accuracy scores model predictions against observed prices.
package accuracy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/fuzzysystem/finance/internal/domain"
)

// Evaluation holds one model's results keyed by metric.
type Evaluation map[domain.MetricKind]domain.MetricResult

// Evaluator computes RMSE and MAE between a ticker's actual column and its
// model prediction columns.
type Evaluator struct {
	log zerolog.Logger
}

// NewEvaluator creates a new accuracy evaluator
func NewEvaluator(log zerolog.Logger) *Evaluator {
	return &Evaluator{
		log: log.With().Str("service", "accuracy").Logger(),
	}
}

// Evaluate scores every requested model of ticker. An empty tags list means
// all models registered for the ticker, and a ticker without any model column
// fails with ErrInsufficientData. An empty kinds list means all
// metrics. Each model is scored over its own aligned rows, the rows where both
// the actual and that model's prediction are present. Nothing is returned if
// any model fails.
func (e *Evaluator) Evaluate(
	table *domain.WideTable,
	ticker domain.Ticker,
	tags []domain.ModelTag,
	kinds ...domain.MetricKind,
) (map[domain.ModelTag]Evaluation, error) {
	schema := table.Schema()
	if !schema.HasTicker(ticker) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTicker, ticker)
	}
	if len(tags) == 0 {
		tags = schema.Tags(ticker)
		if len(tags) == 0 {
			return nil, fmt.Errorf("%w: %s has no model columns", domain.ErrInsufficientData, ticker)
		}
	}
	if len(kinds) == 0 {
		kinds = domain.AllMetricKinds
	}
	for _, kind := range kinds {
		if kind != domain.MetricRMSE && kind != domain.MetricMAE {
			return nil, fmt.Errorf("unsupported metric %q", kind)
		}
	}

	actual, _ := table.Column(string(ticker))

	results := make(map[domain.ModelTag]Evaluation, len(tags))
	for _, tag := range tags {
		if !schema.HasTag(ticker, tag) {
			return nil, fmt.Errorf("%w: %q has no %q predictions", domain.ErrUnknownModelTag, ticker, tag)
		}
		predicted, _ := table.Column(schema.Column(ticker, tag))

		residuals := alignedResiduals(actual, predicted)
		if len(residuals) == 0 {
			return nil, fmt.Errorf("%w: no rows with both actual and %s values for %s",
				domain.ErrInsufficientData, tag, ticker)
		}

		evaluation := make(Evaluation, len(kinds))
		for _, kind := range kinds {
			evaluation[kind] = domain.MetricResult{
				Ticker:   ticker,
				ModelTag: tag,
				Kind:     kind,
				Value:    score(kind, residuals),
				Samples:  len(residuals),
			}
		}
		results[tag] = evaluation

		e.log.Debug().
			Str("ticker", string(ticker)).
			Str("model", string(tag)).
			Int("samples", len(residuals)).
			Msg("Evaluated model accuracy")
	}

	return results, nil
}

// alignedResiduals returns actual-predicted for rows where both are present.
func alignedResiduals(actual, predicted []domain.NullFloat) []float64 {
	residuals := make([]float64, 0, len(actual))
	for i := range actual {
		if actual[i].Valid && predicted[i].Valid {
			residuals = append(residuals, actual[i].Float64-predicted[i].Float64)
		}
	}
	return residuals
}

func score(kind domain.MetricKind, residuals []float64) float64 {
	switch kind {
	case domain.MetricRMSE:
		return RMSE(residuals)
	default:
		return MAE(residuals)
	}
}

// RMSE is sqrt(mean(r^2)).
func RMSE(residuals []float64) float64 {
	squared := make([]float64, len(residuals))
	for i, r := range residuals {
		squared[i] = r * r
	}
	return math.Sqrt(stat.Mean(squared, nil))
}

// MAE is mean(|r|).
func MAE(residuals []float64) float64 {
	absolute := make([]float64, len(residuals))
	for i, r := range residuals {
		absolute[i] = math.Abs(r)
	}
	return stat.Mean(absolute, nil)
}
