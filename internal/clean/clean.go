// Package clean implements the micro-clean normalization pass applied to a
// table before any prompt is built from it.
package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tabular-insights/backend/internal/models"
)

// naValues are the spellings normalized to an empty cell.
var naValues = map[string]bool{
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"-":    true,
}

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	// thousands-separated numbers, e.g. 1,234 or -12,345.67
	thousandsRe = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// MicroClean applies the fixed normalization rule set and returns a new
// table; the input is never mutated. The pass is deterministic and
// idempotent: cleaning a cleaned table is a no-op.
//
// Rules: trim whitespace on headers and cells, normalize NA spellings to
// empty, drop fully-empty rows and columns, fill blank header names, dedupe
// duplicate headers, strip thousands separators from numbers, and re-infer
// column dtypes.
func MicroClean(t *models.Table) *models.Table {
	out := t.Clone()

	trimCells(out)
	dropEmptyRows(out)
	dropEmptyColumns(out)
	normalizeHeaders(out)

	types := models.InferColumnTypes(out.Rows, len(out.Columns))
	for i := range out.Columns {
		out.Columns[i].Type = types[i]
	}

	return out
}

func trimCells(t *models.Table) {
	for i := range t.Columns {
		name := strings.TrimSpace(t.Columns[i].Name)
		t.Columns[i].Name = innerSpaceRe.ReplaceAllString(name, " ")
	}
	for _, row := range t.Rows {
		for j, cell := range row {
			v := strings.TrimSpace(cell)
			if naValues[strings.ToLower(v)] {
				v = ""
			} else if thousandsRe.MatchString(v) {
				v = strings.ReplaceAll(v, ",", "")
			}
			row[j] = v
		}
	}
}

func dropEmptyRows(t *models.Table) {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

func dropEmptyColumns(t *models.Table) {
	keep := make([]int, 0, len(t.Columns))
	for col := range t.Columns {
		hasHeader := t.Columns[col].Name != ""
		hasData := false
		for _, row := range t.Rows {
			if col < len(row) && row[col] != "" {
				hasData = true
				break
			}
		}
		if hasHeader || hasData {
			keep = append(keep, col)
		}
	}

	if len(keep) == len(t.Columns) {
		return
	}

	columns := make([]models.Column, len(keep))
	for i, col := range keep {
		columns[i] = t.Columns[col]
	}
	for i, row := range t.Rows {
		projected := make([]string, len(keep))
		for j, col := range keep {
			if col < len(row) {
				projected[j] = row[col]
			}
		}
		t.Rows[i] = projected
	}
	t.Columns = columns
}

// normalizeHeaders fills blank names positionally and suffixes duplicates so
// every column is addressable by name.
func normalizeHeaders(t *models.Table) {
	seen := make(map[string]int, len(t.Columns))
	for i := range t.Columns {
		name := t.Columns[i].Name
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		if _, ok := seen[name]; !ok {
			seen[name] = 1
		}
		t.Columns[i].Name = name
	}
}
