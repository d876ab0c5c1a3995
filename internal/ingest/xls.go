package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"

	"github.com/tabular-insights/backend/internal/models"
)

// maxXLSColumns is the BIFF8 column limit; it bounds the header probe.
const maxXLSColumns = 256

// parseXLS reads the first sheet of a legacy BIFF workbook into a table.
// Like parseWorkbook, short rows are padded to the header width.
func parseXLS(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{cause: err}
	}

	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{cause: err}
	}

	if wb.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedTable)
	}
	sh, err := wb.GetSheet(0)
	if err != nil {
		return nil, &ParseError{cause: err}
	}

	head, err := sh.GetRow(0)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet is empty", ErrMalformedTable)
	}
	var header []string
	for j := 0; j < maxXLSColumns; j++ {
		cell, err := head.GetCol(j)
		if err != nil {
			break
		}
		header = append(header, cell.GetString())
	}

	var rows [][]string
	for i := 1; i <= sh.GetNumberRows(); i++ {
		row, err := sh.GetRow(i)
		if err != nil {
			continue
		}
		cells := make([]string, len(header))
		for j := range cells {
			if cell, err := row.GetCol(j); err == nil {
				cells[j] = cell.GetString()
			}
		}
		rows = append(rows, cells)
	}

	return buildTable(header, rows)
}
