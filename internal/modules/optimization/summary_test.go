package optimization

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/fuzzysystem/finance/internal/domain"
)

func testSummary() *domain.OptimizationSummary {
	return &domain.OptimizationSummary{
		Weights: []domain.PortfolioWeight{
			{Ticker: "AAPL", Percent: 64.505},
			{Ticker: "MSFT", Percent: 35.5},
		},
		DateFrom:         "2020-01-02",
		DateTo:           "2024-12-31",
		AnnualizedReturn: 21.456,
		Risk:             17,
	}
}

func TestFormatSummary_Content(t *testing.T) {
	text := FormatSummary(testSummary())

	assert.Contains(t, text, "2020-01-02 to 2024-12-31")
	assert.Contains(t, text, "- Annualized return: 21.46%")
	assert.Contains(t, text, "- Risk: 17.00%")
	assert.Contains(t, text, "- AAPL: 64.51%")
	assert.Contains(t, text, "- MSFT: 35.50%")
	assert.True(t, strings.Index(text, "AAPL") < strings.Index(text, "MSFT"))
}

func TestFormatSummary_RendersAsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, goldmark.Convert([]byte(FormatSummary(testSummary())), &buf))

	html := buf.String()
	assert.Equal(t, 1, strings.Count(html, "<h3>"))
	assert.Equal(t, 2, strings.Count(html, "<ul>"))
	// return, risk and one entry per weight
	assert.Equal(t, 4, strings.Count(html, "<li>"))
	assert.Contains(t, html, "<strong>Weights</strong>")
}

func TestFormatSummary_NegativeWeights(t *testing.T) {
	s := testSummary()
	s.Weights = []domain.PortfolioWeight{{Ticker: "TSLA", Percent: -12.3}}

	assert.Contains(t, FormatSummary(s), "- TSLA: -12.30%")
}
