package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	"github.com/fuzzysystem/finance/internal/domain"
)

const parquetBatchSize = 256

// ReadParquet loads a wide table from a flat Parquet file. The date column
// may be a string, an INT32 DATE or an INT64 TIMESTAMP; data columns must be
// numeric.
func ReadParquet(path string, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := parquet.NewReader(f)
	defer reader.Close()

	schema := reader.Schema()
	paths := schema.Columns()
	header := make([]string, len(paths))
	for i, p := range paths {
		if len(p) != 1 {
			return nil, fmt.Errorf("%w: %s: nested column %s", domain.ErrMalformedTable, path, strings.Join(p, "."))
		}
		header[i] = p[0]
	}

	dateIdx, columns, err := splitDateColumn(header, opts.DateColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	leaf, ok := schema.Lookup(header[dateIdx])
	if !ok {
		return nil, fmt.Errorf("%w: %s: date column %q not in schema", domain.ErrMalformedTable, path, header[dateIdx])
	}
	decodeDate := dateDecoder(leaf.Node.Type().LogicalType(), opts.DateLayout)

	var rows []domain.Row
	buf := make([]parquet.Row, parquetBatchSize)
	for {
		n, readErr := reader.ReadRows(buf)
		for _, values := range buf[:n] {
			row, err := decodeParquetRow(values, dateIdx, len(columns), decodeDate)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: %v", domain.ErrMalformedTable, path, len(rows), err)
			}
			rows = append(rows, row)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows of %s: %w", path, readErr)
		}
	}

	return domain.NewWideTable(columns, rows, opts.Separator)
}

func decodeParquetRow(values parquet.Row, dateIdx, width int, decodeDate func(parquet.Value) (time.Time, error)) (domain.Row, error) {
	row := domain.Row{Cells: make([]domain.NullFloat, width)}
	for _, v := range values {
		col := v.Column()
		if col == dateIdx {
			if v.IsNull() {
				return row, errors.New("null date")
			}
			date, err := decodeDate(v)
			if err != nil {
				return row, err
			}
			row.Date = date
			continue
		}

		cell, err := parquetCell(v)
		if err != nil {
			return row, err
		}
		if col > dateIdx {
			col--
		}
		row.Cells[col] = cell
	}
	return row, nil
}

func parquetCell(v parquet.Value) (domain.NullFloat, error) {
	if v.IsNull() {
		return domain.Null(), nil
	}
	switch v.Kind() {
	case parquet.Double:
		return domain.Float(v.Double()), nil
	case parquet.Float:
		return domain.Float(float64(v.Float())), nil
	case parquet.Int32:
		return domain.Float(float64(v.Int32())), nil
	case parquet.Int64:
		return domain.Float(float64(v.Int64())), nil
	case parquet.ByteArray:
		return parseCell(string(v.ByteArray()))
	default:
		return domain.Null(), fmt.Errorf("unsupported cell kind %s", v.Kind())
	}
}

func dateDecoder(logical *format.LogicalType, layout string) func(parquet.Value) (time.Time, error) {
	return func(v parquet.Value) (time.Time, error) {
		switch v.Kind() {
		case parquet.ByteArray:
			return parseDate(string(v.ByteArray()), layout)
		case parquet.Int32:
			// DATE: days since the Unix epoch
			return domain.CalendarDate(time.Unix(int64(v.Int32())*86400, 0).UTC()), nil
		case parquet.Int64:
			return domain.CalendarDate(timestampOf(v.Int64(), logical)), nil
		default:
			return time.Time{}, fmt.Errorf("unsupported date kind %s", v.Kind())
		}
	}
}

func timestampOf(v int64, logical *format.LogicalType) time.Time {
	if logical != nil && logical.Timestamp != nil {
		unit := logical.Timestamp.Unit
		switch {
		case unit.Millis != nil:
			return time.UnixMilli(v).UTC()
		case unit.Micros != nil:
			return time.UnixMicro(v).UTC()
		}
	}
	return time.Unix(0, v).UTC()
}
