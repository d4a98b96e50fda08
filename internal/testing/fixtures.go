package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// ForecastCSV is a small wide table: AAPL actuals with ARIMA and
// Holt-Winters predictions, MSFT with Holt-Winters only. Gaps are nulls.
const ForecastCSV = `date,AAPL,AAPL_arima,AAPL_hw,MSFT,MSFT_hw
2024-01-02,185.64,184.10,186.00,370.87,
2024-01-03,184.25,185.00,183.90,370.60,371.20
2024-01-04,181.91,,182.50,367.94,368.00
`

// OptimizationJSON holds the five optimization series in object form.
const OptimizationJSON = `{
  "efficient_frontier": {"x": [0.10, 0.12, 0.15], "y": [0.05, 0.08, 0.10]},
  "tangency_line": {"x": [0.0, 0.2], "y": [0.02, 0.14]},
  "simulated_portfolios": {"x": [0.11, 0.13, 0.16], "y": [0.04, 0.06, 0.09]},
  "max_sharpe_ratio": {"x": [0.12], "y": [0.08]},
  "min_var_portfolio": {"x": [0.10], "y": [0.05]}
}`

// OptimizationMetadataJSON describes the optimum portfolio of OptimizationJSON.
const OptimizationMetadataJSON = `{
  "optimum_portfolio": {
    "weights": {"MSFT": 35.5, "AAPL": 64.5},
    "annualized_return": 21.46,
    "risk": 17.0
  },
  "date_updated": {"date_from": "2020-01-02", "date_to": "2024-12-31"}
}`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}
