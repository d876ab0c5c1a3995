package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tabular-insights/backend/internal/models"
)

// parseWorkbook reads the first sheet of an Excel workbook into a table.
// Spreadsheets legitimately omit trailing empty cells, so short rows are
// padded to the header width; rows wider than the header are structural
// errors.
func parseWorkbook(r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{cause: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedTable)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{cause: err}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", ErrMalformedTable)
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedTable, i+1, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row)
	}

	return buildTable(header, data)
}
