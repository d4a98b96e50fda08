package forecast

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/domain"
)

// Chart is a presentation-ready series for one ticker: formatted labels,
// market-close timestamps and the padded axis range.
type Chart struct {
	Ticker domain.Ticker            `json:"ticker"`
	Points []domain.LongSeriesPoint `json:"points"`
	Range  Range                    `json:"range"`
}

// TickerInfo lists a ticker and the models that forecast it.
type TickerInfo struct {
	Ticker domain.Ticker `json:"ticker"`
	Models []ModelInfo   `json:"models"`
}

// ModelInfo is a model tag with its display name. Name is empty when the tag
// has no registered display name.
type ModelInfo struct {
	Tag  domain.ModelTag `json:"tag"`
	Name string          `json:"name,omitempty"`
}

// Service runs the reshape -> label -> timestamp -> range chain.
type Service struct {
	labels     *LabelFormatter
	normalizer *Normalizer
	log        zerolog.Logger
}

// NewService creates a new forecast service
func NewService(labels *LabelFormatter, normalizer *Normalizer, log zerolog.Logger) *Service {
	return &Service{
		labels:     labels,
		normalizer: normalizer,
		log:        log.With().Str("service", "forecast").Logger(),
	}
}

// Labels returns the service's label formatter.
func (s *Service) Labels() *LabelFormatter {
	return s.labels
}

// Tickers lists the table's tickers, sorted, with their models.
func (s *Service) Tickers(table *domain.WideTable) []TickerInfo {
	schema := table.Schema()
	tickers := schema.Tickers()

	infos := make([]TickerInfo, 0, len(tickers))
	for _, ticker := range tickers {
		info := TickerInfo{Ticker: ticker, Models: []ModelInfo{}}
		for _, tag := range schema.Tags(ticker) {
			name, _ := s.labels.ModelName(tag)
			info.Models = append(info.Models, ModelInfo{Tag: tag, Name: name})
		}
		infos = append(infos, info)
	}
	return infos
}

// Chart builds the presentation-ready series of ticker.
func (s *Service) Chart(table *domain.WideTable, ticker domain.Ticker) (*Chart, error) {
	points, err := Reshape(table, ticker)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string)
	instants := make(map[time.Time]time.Time)
	for i := range points {
		p := &points[i]

		label, ok := labels[p.Label]
		if !ok {
			label, err = s.labels.Format(p.Label, ticker)
			if err != nil {
				return nil, fmt.Errorf("failed to label column %q: %w", p.Label, err)
			}
			labels[p.Label] = label
		}
		p.Label = label

		instant, ok := instants[p.Timestamp]
		if !ok {
			instant, err = s.normalizer.Normalize(p.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("failed to normalize %s: %w", p.Timestamp.Format("2006-01-02"), err)
			}
			instants[p.Timestamp] = instant
		}
		p.Timestamp = instant
	}

	axis, err := RangeOf(points)
	if err != nil {
		return nil, fmt.Errorf("ticker %s: %w", ticker, err)
	}

	s.log.Debug().
		Str("ticker", string(ticker)).
		Int("points", len(points)).
		Float64("lower", axis.Lower).
		Float64("upper", axis.Upper).
		Msg("Built forecast chart")

	return &Chart{Ticker: ticker, Points: points, Range: axis}, nil
}
