package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fuzzysystem/finance/internal/domain"
)

// ReadCSVFile loads a wide table from a CSV file with a header row.
func ReadCSVFile(path string, opts Options) (*domain.WideTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadCSV decodes a wide table from CSV.
func ReadCSV(r io.Reader, opts Options) (*domain.WideTable, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty csv", domain.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	// Spreadsheet exports often carry a UTF-8 BOM on the first cell.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	dateIdx, columns, err := splitDateColumn(header, opts.DateColumn)
	if err != nil {
		return nil, err
	}

	var rows []domain.Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		date, err := parseDate(record[dateIdx], opts.DateLayout)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedTable, line, err)
		}

		cells := make([]domain.NullFloat, 0, len(columns))
		for i, raw := range record {
			if i == dateIdx {
				continue
			}
			cell, err := parseCell(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", domain.ErrMalformedTable, line, header[i], err)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, domain.Row{Date: date, Cells: cells})
	}

	return domain.NewWideTable(columns, rows, opts.Separator)
}
