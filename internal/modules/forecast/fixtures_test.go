package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

// newAAPLTable is the two-row ARIMA example: the second prediction is missing.
func newAAPLTable(t *testing.T) *domain.WideTable {
	t.Helper()
	table, err := domain.NewWideTable(
		[]string{"AAPL", "AAPL_arima"},
		[]domain.Row{
			{Date: mustDate(t, "2025-02-24"), Cells: []domain.NullFloat{domain.Float(150.00), domain.Float(151.20)}},
			{Date: mustDate(t, "2025-02-25"), Cells: []domain.NullFloat{domain.Float(152.00), domain.Null()}},
		},
		"_",
	)
	require.NoError(t, err)
	return table
}

// newMultiTable has two tickers with different model sets.
func newMultiTable(t *testing.T) *domain.WideTable {
	t.Helper()
	table, err := domain.NewWideTable(
		[]string{"AAPL", "MSFT", "AAPL_arima", "AAPL_hw", "MSFT_hw"},
		[]domain.Row{
			{Date: mustDate(t, "2025-03-07"), Cells: []domain.NullFloat{domain.Float(239.07), domain.Float(393.31), domain.Float(241.111), domain.Float(238.4), domain.Float(390)}},
			{Date: mustDate(t, "2025-03-10"), Cells: []domain.NullFloat{domain.Float(227.48), domain.Float(380.16), domain.Float(238.876), domain.Null(), domain.Float(392.5)}},
			{Date: mustDate(t, "2025-03-11"), Cells: []domain.NullFloat{domain.Null(), domain.Float(380.45), domain.Float(236.3), domain.Float(231.105), domain.Float(381.2)}},
		},
		"_",
	)
	require.NoError(t, err)
	return table
}
