package forecast

import (
	"fmt"
	"strings"

	"github.com/fuzzysystem/finance/internal/domain"
)

// LabelFormatter maps raw column names to series labels that state where the
// data comes from: "AAPL (Actual)" or "AAPL (ARIMA model)".
type LabelFormatter struct {
	separator string
	models    map[domain.ModelTag]string
}

// NewLabelFormatter creates a formatter for the given tag -> display name
// mapping. The mapping is copied.
func NewLabelFormatter(separator string, models map[domain.ModelTag]string) *LabelFormatter {
	if separator == "" {
		separator = domain.DefaultSeparator
	}
	copied := make(map[domain.ModelTag]string, len(models))
	for tag, name := range models {
		copied[tag] = name
	}
	return &LabelFormatter{separator: separator, models: copied}
}

// Format returns the display label of column for ticker.
func (f *LabelFormatter) Format(column string, ticker domain.Ticker) (string, error) {
	if column == string(ticker) {
		return ActualLabel(ticker), nil
	}

	tag, ok := strings.CutPrefix(column, string(ticker)+f.separator)
	if !ok {
		return "", fmt.Errorf("%w: column %q is not a model column of %q", domain.ErrUnknownModelTag, column, ticker)
	}

	name, err := f.ModelName(domain.ModelTag(tag))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", ticker, name), nil
}

// ModelName returns the display name registered for tag.
func (f *LabelFormatter) ModelName(tag domain.ModelTag) (string, error) {
	name, ok := f.models[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownModelTag, tag)
	}
	return name, nil
}

// ActualLabel is the label of a ticker's observed values.
func ActualLabel(ticker domain.Ticker) string {
	return fmt.Sprintf("%s (Actual)", ticker)
}
