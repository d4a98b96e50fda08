package optimization

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/fuzzysystem/finance/internal/domain"
)

// Metadata locations inside the optimization metadata document.
const (
	pathWeights          = "$.optimum_portfolio.weights"
	pathAnnualizedReturn = "$.optimum_portfolio.annualized_return"
	pathRisk             = "$.optimum_portfolio.risk"
	pathDateFrom         = "$.date_updated.date_from"
	pathDateTo           = "$.date_updated.date_to"
)

func extractSummary(doc interface{}) (*domain.OptimizationSummary, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: missing metadata", domain.ErrMalformedOptimizationData)
	}

	weights, err := lookupWeights(doc)
	if err != nil {
		return nil, err
	}
	annualizedReturn, err := lookupNumber(doc, pathAnnualizedReturn)
	if err != nil {
		return nil, err
	}
	risk, err := lookupNumber(doc, pathRisk)
	if err != nil {
		return nil, err
	}
	dateFrom, err := lookupDate(doc, pathDateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := lookupDate(doc, pathDateTo)
	if err != nil {
		return nil, err
	}

	return &domain.OptimizationSummary{
		Weights:          weights,
		DateFrom:         dateFrom,
		DateTo:           dateTo,
		AnnualizedReturn: annualizedReturn,
		Risk:             risk,
	}, nil
}

func lookup(doc interface{}, path string) (interface{}, error) {
	value, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedOptimizationData, path, err)
	}
	if value == nil {
		return nil, fmt.Errorf("%w: %s is null", domain.ErrMalformedOptimizationData, path)
	}
	return value, nil
}

func lookupWeights(doc interface{}) ([]domain.PortfolioWeight, error) {
	value, err := lookup(doc, pathWeights)
	if err != nil {
		return nil, err
	}
	raw, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, expected an object", domain.ErrMalformedOptimizationData, pathWeights, value)
	}

	weights := make([]domain.PortfolioWeight, 0, len(raw))
	for ticker, v := range raw {
		percent, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: weight of %s is %T, expected a number", domain.ErrMalformedOptimizationData, ticker, v)
		}
		weights = append(weights, domain.PortfolioWeight{Ticker: domain.Ticker(ticker), Percent: percent})
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Ticker < weights[j].Ticker })
	return weights, nil
}

func lookupNumber(doc interface{}, path string) (float64, error) {
	value, err := lookup(doc, path)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(value)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, expected a number", domain.ErrMalformedOptimizationData, path, value)
	}
	return f, nil
}

func lookupDate(doc interface{}, path string) (string, error) {
	value, err := lookup(doc, path)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case time.Time:
		return v.Format("2006-01-02"), nil
	default:
		return "", fmt.Errorf("%w: %s is %T, expected a date string", domain.ErrMalformedOptimizationData, path, value)
	}
}

// toFloat converts the numeric types produced by the JSON and msgpack decoders.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatSummary renders the optimum portfolio as markdown. Percentages are
// shown with two decimals; weights are listed as given, so shorts and
// leverage show up as negative or >100% entries.
func FormatSummary(s *domain.OptimizationSummary) string {
	var b strings.Builder

	b.WriteString("### Optimum portfolio (max Sharpe ratio)\n\n")
	fmt.Fprintf(&b, "Optimized over prices from %s to %s.\n\n", s.DateFrom, s.DateTo)
	fmt.Fprintf(&b, "- Annualized return: %s%%\n", percent(s.AnnualizedReturn))
	fmt.Fprintf(&b, "- Risk: %s%%\n\n", percent(s.Risk))

	b.WriteString("**Weights**\n\n")
	for _, w := range s.Weights {
		fmt.Fprintf(&b, "- %s: %s%%\n", w.Ticker, percent(w.Percent))
	}

	return b.String()
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
