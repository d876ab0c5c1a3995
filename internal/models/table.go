package models

import (
	"regexp"
	"strings"
	"time"
)

// ColumnType is the inferred value type of a table column.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeBool    ColumnType = "bool"
	TypeDate    ColumnType = "date"
)

// Column describes a single table column.
type Column struct {
	Name string     `json:"name" msgpack:"name"`
	Type ColumnType `json:"type" msgpack:"type"`
}

// Table is a parsed tabular value: an ordered header plus rows of cells.
// Cells are kept in canonical string form; Column.Type records the dtype
// inferred over the column's non-empty cells.
type Table struct {
	Columns []Column   `json:"columns" msgpack:"columns"`
	Rows    [][]string `json:"rows" msgpack:"rows"`
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// DTypes returns a name -> dtype map for the report payload.
func (t *Table) DTypes() map[string]string {
	dtypes := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		dtypes[c.Name] = string(c.Type)
	}
	return dtypes
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([][]string, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make([]string, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

var (
	integerRe = regexp.MustCompile(`^[+-]?\d+$`)
	floatRe   = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+)$`)
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	time.RFC3339,
}

// InferType classifies a single cell value.
func InferType(value string) ColumnType {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return TypeString
	case integerRe.MatchString(v):
		return TypeInteger
	case floatRe.MatchString(v):
		return TypeFloat
	}
	switch strings.ToLower(v) {
	case "true", "false":
		return TypeBool
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return TypeDate
		}
	}
	return TypeString
}

// InferColumnType classifies a column from its cells. Integer and float cells
// mix to float; anything else mixing demotes the column to string. A column
// with no non-empty cells is a string column.
func InferColumnType(values []string) ColumnType {
	var seen ColumnType
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		vt := InferType(v)
		switch {
		case seen == "":
			seen = vt
		case seen == vt:
		case (seen == TypeInteger && vt == TypeFloat) || (seen == TypeFloat && vt == TypeInteger):
			seen = TypeFloat
		default:
			return TypeString
		}
	}
	if seen == "" {
		return TypeString
	}
	return seen
}

// InferColumnTypes classifies every column of a row set.
func InferColumnTypes(rows [][]string, columnCount int) []ColumnType {
	types := make([]ColumnType, columnCount)
	for col := 0; col < columnCount; col++ {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				values = append(values, row[col])
			}
		}
		types[col] = InferColumnType(values)
	}
	return types
}
