package ingest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tabular-insights/backend/internal/models"
	"github.com/tabular-insights/backend/internal/tablestore"
)

func newTestLoader() *Loader {
	return NewLoader(tablestore.NewMemoryStore(), zap.NewNop())
}

func TestReadValidateFile_CSVRoundTrip(t *testing.T) {
	l := newTestLoader()

	id, err := l.ReadValidateFile("data.csv", strings.NewReader("name,value\na,1\nb,2\nc,3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty clean ID")
	}

	table, err := l.LoadFile(id)
	if err != nil {
		t.Fatalf("unexpected error loading table: %v", err)
	}

	wantNames := []string{"name", "value"}
	if !reflect.DeepEqual(table.ColumnNames(), wantNames) {
		t.Errorf("columns = %v, want %v", table.ColumnNames(), wantNames)
	}
	wantRows := [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}
	if table.Columns[1].Type != models.TypeInteger {
		t.Errorf("value column type = %s, want %s", table.Columns[1].Type, models.TypeInteger)
	}
}

func TestReadValidateFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  error
	}{
		{"disallowed extension", "data.txt", "name,value\na,1\n", ErrInvalidFileType},
		{"empty file", "data.csv", "", ErrMalformedTable},
		{"ragged rows", "data.csv", "a,b\n1,2,3\n", ErrMalformedTable},
		{"blank header", "data.csv", " , \n1,2\n", ErrMalformedTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader()
			id, err := l.ReadValidateFile(tt.filename, strings.NewReader(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if id != "" {
				t.Errorf("expected no clean ID, got %q", id)
			}
		})
	}
}

func TestReadValidateFile_CorruptWorkbook(t *testing.T) {
	l := newTestLoader()

	_, err := l.ReadValidateFile("data.xlsx", strings.NewReader("this is not a workbook"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Unwrap() == nil {
		t.Error("expected a wrapped cause")
	}
	if strings.Contains(err.Error(), "zip") {
		t.Error("parser cause must not leak into the message")
	}
}

func TestReadValidateFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"region", "revenue"},
		{"north", 120},
		{"south", 80},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	l := newTestLoader()
	id, err := l.ReadValidateFile("report.xlsx", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table, err := l.LoadFile(id)
	if err != nil {
		t.Fatalf("unexpected error loading table: %v", err)
	}
	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"region", "revenue"}) {
		t.Errorf("columns = %v", got)
	}
	if table.RowCount() != 2 {
		t.Errorf("row count = %d, want 2", table.RowCount())
	}
}

func TestReadValidateFile_XLS(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "quarterly.xls"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	l := newTestLoader()
	id, err := l.ReadValidateFile("quarterly.xls", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table, err := l.LoadFile(id)
	if err != nil {
		t.Fatalf("unexpected error loading table: %v", err)
	}
	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"region", "revenue"}) {
		t.Errorf("columns = %v", got)
	}
	if table.RowCount() != 3 {
		t.Fatalf("row count = %d, want 3", table.RowCount())
	}
	for i, want := range []string{"north", "south", "east"} {
		if table.Rows[i][0] != want {
			t.Errorf("row %d region = %q, want %q", i, table.Rows[i][0], want)
		}
	}
	if table.Columns[1].Type != models.TypeFloat {
		t.Errorf("revenue column type = %s, want %s", table.Columns[1].Type, models.TypeFloat)
	}
}

func TestReadValidateFile_CorruptXLS(t *testing.T) {
	l := newTestLoader()

	_, err := l.ReadValidateFile("report.xls", strings.NewReader("not a compound file"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoadFile_UnknownID(t *testing.T) {
	l := newTestLoader()

	table, err := l.LoadFile("never-issued")
	if !errors.Is(err, tablestore.ErrNotFound) {
		t.Errorf("error = %v, want %v", err, tablestore.ErrNotFound)
	}
	if table != nil {
		t.Error("expected nil table for unknown ID")
	}
}
