package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/modules/accuracy"
	"github.com/fuzzysystem/finance/internal/modules/forecast"
	"github.com/fuzzysystem/finance/internal/modules/optimization"
)

// TickersMarkdown lists tickers with their model names.
func TickersMarkdown(infos []forecast.TickerInfo) string {
	var b strings.Builder
	b.WriteString("# Tickers\n\n")
	for _, info := range infos {
		fmt.Fprintf(&b, "- **%s**", info.Ticker)
		if len(info.Models) > 0 {
			names := make([]string, len(info.Models))
			for i, m := range info.Models {
				names[i] = m.Name
				if names[i] == "" {
					names[i] = string(m.Tag)
				}
			}
			fmt.Fprintf(&b, ": %s", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ChartMarkdown renders a chart as one table row per timestamp and one
// column per series label.
func ChartMarkdown(chart *forecast.Chart) string {
	var labels []string
	seen := make(map[string]bool)
	for _, p := range chart.Points {
		if !seen[p.Label] {
			seen[p.Label] = true
			labels = append(labels, p.Label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", chart.Ticker)
	fmt.Fprintf(&b, "Axis range: %s to %s\n\n", fixed(chart.Range.Lower), fixed(chart.Range.Upper))

	fmt.Fprintf(&b, "| Date | %s |\n", strings.Join(labels, " | "))
	fmt.Fprintf(&b, "|---|%s\n", strings.Repeat("---:|", len(labels)))

	for i := 0; i < len(chart.Points); i += len(labels) {
		row := chart.Points[i : i+len(labels)]
		cells := make([]string, len(row))
		for j, p := range row {
			cells[j] = "n/a"
			if p.Value.Valid {
				cells[j] = fixed(p.Value.Float64)
			}
		}
		fmt.Fprintf(&b, "| %s | %s |\n", row[0].Timestamp.Format("2006-01-02 15:04 MST"), strings.Join(cells, " | "))
	}
	return b.String()
}

// AccuracyMarkdown lists the metric messages of a ticker.
func AccuracyMarkdown(ticker domain.Ticker, messages []accuracy.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s forecast accuracy\n\n", ticker)
	for _, m := range messages {
		fmt.Fprintf(&b, "- %s\n", m.Text)
	}
	return b.String()
}

// OptimizationMarkdown renders the optimum portfolio summary followed by the
// size of each plot series.
func OptimizationMarkdown(surface *optimization.Surface, summary *domain.OptimizationSummary) string {
	var b strings.Builder
	b.WriteString(optimization.FormatSummary(summary))
	b.WriteString("\n**Series**\n\n")
	for _, s := range surface.Series() {
		fmt.Fprintf(&b, "- %s: %d points\n", s.Name, len(s.Points))
	}
	return b.String()
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
