package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnectionString(t *testing.T) {
	assert.Equal(t,
		"/tmp/a.db?mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)",
		buildConnectionString("/tmp/a.db", ProfileReadOnly))
	assert.Equal(t,
		"file:x?cache=shared&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		buildConnectionString("file:x?cache=shared", ProfileStandard))
}

func TestQuoteIdentifier(t *testing.T) {
	q, err := QuoteIdentifier("forecast_2024")
	require.NoError(t, err)
	assert.Equal(t, `"forecast_2024"`, q)

	for _, bad := range []string{"", "1abc", "a b", `x"; DROP TABLE t; --`} {
		_, err := QuoteIdentifier(bad)
		assert.Error(t, err, bad)
	}
}

func TestNew_ReadOnlyRequiresExistingFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		Path:    filepath.Join(t.TempDir(), "missing.db"),
		Profile: ProfileReadOnly,
		Name:    "forecast",
	})
	assert.Error(t, err)
}

func TestTableColumns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "forecast.db")

	db, err := New(ctx, Config{Path: path, Name: "forecast"})
	require.NoError(t, err)
	_, err = db.Conn().ExecContext(ctx, `CREATE TABLE prices (date TEXT, AAPL REAL, AAPL_arima REAL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := New(ctx, Config{Path: path, Profile: ProfileReadOnly, Name: "forecast"})
	require.NoError(t, err)
	defer ro.Close()

	assert.Equal(t, ProfileReadOnly, ro.Profile())
	assert.Equal(t, path, ro.Path())

	cols, err := ro.TableColumns(ctx, "prices")
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "AAPL", "AAPL_arima"}, cols)

	_, err = ro.TableColumns(ctx, "missing")
	assert.Error(t, err)

	_, err = ro.Conn().ExecContext(ctx, `INSERT INTO prices VALUES ('2024-01-02', 1, 2)`)
	assert.Error(t, err)
}
