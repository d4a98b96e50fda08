package sources

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/domain"
	testingpkg "github.com/fuzzysystem/finance/internal/testing"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(testingpkg.ForecastCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"AAPL", "AAPL_arima", "AAPL_hw", "MSFT", "MSFT_hw"}, table.Columns())
	assert.Equal(t, []time.Time{date("2024-01-02"), date("2024-01-03"), date("2024-01-04")}, table.Dates())

	schema := table.Schema()
	assert.Equal(t, []domain.Ticker{"AAPL", "MSFT"}, schema.Tickers())
	assert.Equal(t, []domain.ModelTag{"arima", "hw"}, schema.Tags("AAPL"))

	arima, ok := table.Column("AAPL_arima")
	require.True(t, ok)
	assert.Equal(t, []domain.NullFloat{domain.Float(184.10), domain.Float(185.00), domain.Null()}, arima)

	msft, _ := table.Column("MSFT_hw")
	assert.False(t, msft[0].Valid)
}

func TestReadCSV_DateColumnAndNullMarkers(t *testing.T) {
	input := "AAPL,day,AAPL_pred\n1.5,02/01/2024,NaN\n2.5,03/01/2024,null\n"
	table, err := ReadCSV(strings.NewReader(input), Options{DateColumn: "day", DateLayout: "02/01/2006"})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "AAPL_pred"}, table.Columns())
	assert.Equal(t, date("2024-01-02"), table.Dates()[0])

	pred, _ := table.Column("AAPL_pred")
	assert.Equal(t, []domain.NullFloat{domain.Null(), domain.Null()}, pred)
}

func TestReadCSV_NonFiniteCellsAreNull(t *testing.T) {
	input := "date,AAPL,AAPL_arima\n2024-01-02,150,inf\n2024-01-03,+Inf,-Infinity\n2024-01-04,152,151.2\n"
	table, err := ReadCSV(strings.NewReader(input), Options{})
	require.NoError(t, err)

	actual, _ := table.Column("AAPL")
	assert.Equal(t, []domain.NullFloat{domain.Float(150), domain.Null(), domain.Float(152)}, actual)
	arima, _ := table.Column("AAPL_arima")
	assert.Equal(t, []domain.NullFloat{domain.Null(), domain.Null(), domain.Float(151.2)}, arima)
}

func TestReadCSV_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
	}{
		{"empty", "", Options{}},
		{"date only", "date\n2024-01-02\n", Options{}},
		{"bad number", "date,AAPL\n2024-01-02,abc\n", Options{}},
		{"bad date", "date,AAPL\nyesterday,1\n", Options{}},
		{"missing date column", "date,AAPL\n2024-01-02,1\n", Options{DateColumn: "Date"}},
		{"orphan model column", "date,AAPL_arima\n2024-01-02,1\n", Options{}},
		{"duplicate date", "date,AAPL\n2024-01-02,1\n2024-01-02,2\n", Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			assert.ErrorIs(t, err, domain.ErrMalformedTable)
		})
	}
}

func TestReadTable_Dispatch(t *testing.T) {
	dir := t.TempDir()
	path := testingpkg.WriteFile(t, dir, "forecast.csv", testingpkg.ForecastCSV)

	table, err := ReadTable(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = ReadTable(context.Background(), testingpkg.WriteFile(t, dir, "forecast.xlsx", ""), Options{})
	assert.Error(t, err)
}

func TestParseSQLiteLocation(t *testing.T) {
	path, table, err := ParseSQLiteLocation("sqlite://data/forecast.db?table=forecast")
	require.NoError(t, err)
	assert.Equal(t, "data/forecast.db", path)
	assert.Equal(t, "forecast", table)

	_, _, err = ParseSQLiteLocation("sqlite://data/forecast.db")
	assert.Error(t, err)
	_, _, err = ParseSQLiteLocation("sqlite://?table=x")
	assert.Error(t, err)
}
