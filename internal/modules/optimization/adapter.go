package optimization

import (
	"fmt"

	"github.com/fuzzysystem/finance/internal/domain"
)

// Surface holds the five renderable optimization series.
type Surface struct {
	EfficientFrontier   domain.OptimizationSeries `json:"efficient_frontier"`
	TangencyLine        domain.OptimizationSeries `json:"tangency_line"`
	SimulatedPortfolios domain.OptimizationSeries `json:"simulated_portfolios"`
	MaxSharpeRatio      domain.OptimizationSeries `json:"max_sharpe_ratio"`
	MinVarPortfolio     domain.OptimizationSeries `json:"min_var_portfolio"`
}

// Series returns the five series in plotting order.
func (s *Surface) Series() []domain.OptimizationSeries {
	return []domain.OptimizationSeries{
		s.EfficientFrontier,
		s.TangencyLine,
		s.SimulatedPortfolios,
		s.MaxSharpeRatio,
		s.MinVarPortfolio,
	}
}

// singlePoint marks the series that describe exactly one portfolio.
var singlePoint = map[string]bool{
	KeyMaxSharpeRatio:  true,
	KeyMinVarPortfolio: true,
}

// Adapt validates raw and maps it to plot series and the optimum portfolio
// summary. Any defect fails the whole adaptation.
func Adapt(raw Raw) (*Surface, *domain.OptimizationSummary, error) {
	series := make(map[string]domain.OptimizationSeries, len(SeriesKeys))
	for _, key := range SeriesKeys {
		s, err := adaptSeries(raw.Series, key)
		if err != nil {
			return nil, nil, err
		}
		series[key] = s
	}

	summary, err := extractSummary(raw.Metadata)
	if err != nil {
		return nil, nil, err
	}

	return &Surface{
		EfficientFrontier:   series[KeyEfficientFrontier],
		TangencyLine:        series[KeyTangencyLine],
		SimulatedPortfolios: series[KeySimulatedPortfolios],
		MaxSharpeRatio:      series[KeyMaxSharpeRatio],
		MinVarPortfolio:     series[KeyMinVarPortfolio],
	}, summary, nil
}

func adaptSeries(all map[string]RawSeries, key string) (domain.OptimizationSeries, error) {
	raw, ok := all[key]
	if !ok {
		return domain.OptimizationSeries{}, fmt.Errorf("%w: missing series %q", domain.ErrMalformedOptimizationData, key)
	}
	if len(raw.X) != len(raw.Y) {
		return domain.OptimizationSeries{}, fmt.Errorf("%w: series %q has %d x values and %d y values",
			domain.ErrMalformedOptimizationData, key, len(raw.X), len(raw.Y))
	}
	if singlePoint[key] && len(raw.X) != 1 {
		return domain.OptimizationSeries{}, fmt.Errorf("%w: series %q must hold exactly one point, got %d",
			domain.ErrMalformedOptimizationData, key, len(raw.X))
	}

	points := make([]domain.OptimizationPoint, len(raw.X))
	for i := range raw.X {
		points[i] = domain.OptimizationPoint{X: raw.X[i], Y: raw.Y[i]}
	}
	return domain.OptimizationSeries{Name: key, Points: points}, nil
}
