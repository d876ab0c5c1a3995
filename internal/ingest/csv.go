package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tabular-insights/backend/internal/models"
)

// parseCSV reads a delimited text stream into a table. The first record is
// the header; every data record must have the same field count, which
// csv.Reader enforces for us.
func parseCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		// Ragged records and broken quoting are structural problems, not
		// corrupt bytes.
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedTable)
	}

	return buildTable(records[0], records[1:])
}

// buildTable assembles a table from a header row and data rows, inferring
// column dtypes. The header must contain at least one non-blank cell.
func buildTable(header []string, rows [][]string) (*models.Table, error) {
	blank := true
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			blank = false
			break
		}
	}
	if len(header) == 0 || blank {
		return nil, fmt.Errorf("%w: header row is empty", ErrMalformedTable)
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedTable, i+1, len(row), len(header))
		}
	}

	types := models.InferColumnTypes(rows, len(header))
	columns := make([]models.Column, len(header))
	for i, name := range header {
		columns[i] = models.Column{Name: name, Type: types[i]}
	}

	return &models.Table{Columns: columns, Rows: rows}, nil
}
