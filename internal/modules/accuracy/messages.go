package accuracy

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fuzzysystem/finance/internal/domain"
)

// ModelNamer resolves a model tag's display name.
type ModelNamer interface {
	ModelName(tag domain.ModelTag) (string, error)
}

// Message is a formatted metric line.
type Message struct {
	ModelTag domain.ModelTag   `json:"model_tag"`
	Kind     domain.MetricKind `json:"metric"`
	Text     string            `json:"text"`
}

// FormatMetric renders "<label>: <value>" with the value at two decimals.
func FormatMetric(label string, value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%s: %v", label, value)
	}
	return fmt.Sprintf("%s: %s", label, decimal.NewFromFloat(value).StringFixed(2))
}

// Messages renders one line per model and metric, models sorted by tag and
// metrics in the order given (all metrics when empty).
func Messages(
	ticker domain.Ticker,
	results map[domain.ModelTag]Evaluation,
	namer ModelNamer,
	kinds ...domain.MetricKind,
) ([]Message, error) {
	if len(kinds) == 0 {
		kinds = domain.AllMetricKinds
	}

	tags := make([]domain.ModelTag, 0, len(results))
	for tag := range results {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var messages []Message
	for _, tag := range tags {
		name, err := namer.ModelName(tag)
		if err != nil {
			return nil, err
		}
		for _, kind := range kinds {
			result, ok := results[tag][kind]
			if !ok {
				continue
			}
			label := fmt.Sprintf("%s (%s) %s", ticker, name, kind)
			messages = append(messages, Message{
				ModelTag: tag,
				Kind:     kind,
				Text:     FormatMetric(label, result.Value),
			})
		}
	}
	return messages, nil
}
