package sources

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fuzzysystem/finance/internal/database"
	"github.com/fuzzysystem/finance/internal/domain"
)

// ReadSQLite loads the wide table stored as table in the SQLite file at path.
// Rows are read in storage order.
func ReadSQLite(ctx context.Context, path, table string, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	db, err := database.New(ctx, database.Config{
		Path:    path,
		Profile: database.ProfileReadOnly,
		Name:    table,
	})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	header, err := db.TableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	dateIdx, columns, err := splitDateColumn(header, opts.DateColumn)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}

	quoted := make([]string, len(header))
	for i, name := range header {
		quoted[i] = `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	quotedTable, err := database.QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + strings.Join(quoted, ", ") + " FROM " + quotedTable + " ORDER BY rowid"
	result, err := db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer result.Close()

	var rows []domain.Row
	for result.Next() {
		var date interface{}
		cells := make([]sql.NullFloat64, len(columns))
		dest := make([]interface{}, len(header))
		for i, j := 0, 0; i < len(header); i++ {
			if i == dateIdx {
				dest[i] = &date
				continue
			}
			dest[i] = &cells[j]
			j++
		}
		if err := result.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: table %s row %d: %v", domain.ErrMalformedTable, table, len(rows), err)
		}

		d, err := sqliteDate(date, opts.DateLayout)
		if err != nil {
			return nil, fmt.Errorf("%w: table %s row %d: %v", domain.ErrMalformedTable, table, len(rows), err)
		}
		row := domain.Row{Date: d, Cells: make([]domain.NullFloat, len(cells))}
		for i, c := range cells {
			if c.Valid {
				row.Cells[i] = domain.Float(c.Float64)
			}
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	return domain.NewWideTable(columns, rows, opts.Separator)
}

func sqliteDate(v interface{}, layout string) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return domain.CalendarDate(d), nil
	case string:
		return parseDate(d, layout)
	case []byte:
		return parseDate(string(d), layout)
	case int64:
		return domain.CalendarDate(time.Unix(d, 0).UTC()), nil
	case nil:
		return time.Time{}, fmt.Errorf("null date")
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", v)
	}
}
