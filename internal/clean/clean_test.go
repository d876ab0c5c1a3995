package clean

import (
	"reflect"
	"testing"

	"github.com/tabular-insights/backend/internal/models"
)

func table(names []string, rows [][]string) *models.Table {
	columns := make([]models.Column, len(names))
	for i, n := range names {
		columns[i] = models.Column{Name: n, Type: models.TypeString}
	}
	return &models.Table{Columns: columns, Rows: rows}
}

func TestMicroClean_TrimsAndNormalizes(t *testing.T) {
	in := table(
		[]string{"  name ", "amount   total"},
		[][]string{
			{" a ", "1,234"},
			{"b", "N/A"},
		},
	)

	out := MicroClean(in)

	if got := out.ColumnNames(); !reflect.DeepEqual(got, []string{"name", "amount total"}) {
		t.Errorf("columns = %v", got)
	}
	if out.Rows[0][0] != "a" {
		t.Errorf("cell not trimmed: %q", out.Rows[0][0])
	}
	if out.Rows[0][1] != "1234" {
		t.Errorf("thousands separator kept: %q", out.Rows[0][1])
	}
	if out.Rows[1][1] != "" {
		t.Errorf("NA spelling kept: %q", out.Rows[1][1])
	}
}

func TestMicroClean_DropsEmptyRowsAndColumns(t *testing.T) {
	in := table(
		[]string{"name", "", "value"},
		[][]string{
			{"a", "", "1"},
			{"  ", "", "  "},
			{"b", "", "2"},
		},
	)

	out := MicroClean(in)

	if out.RowCount() != 2 {
		t.Fatalf("row count = %d, want 2", out.RowCount())
	}
	if out.ColumnCount() != 2 {
		t.Fatalf("column count = %d, want 2", out.ColumnCount())
	}
	if got := out.ColumnNames(); !reflect.DeepEqual(got, []string{"name", "value"}) {
		t.Errorf("columns = %v", got)
	}
}

func TestMicroClean_HeaderFillAndDedupe(t *testing.T) {
	in := table(
		[]string{"name", "name", ""},
		[][]string{
			{"a", "b", "c"},
		},
	)

	out := MicroClean(in)

	want := []string{"name", "name_2", "column_3"}
	if got := out.ColumnNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("columns = %v, want %v", got, want)
	}
}

func TestMicroClean_ReinfersTypes(t *testing.T) {
	in := table(
		[]string{"id", "score", "flag", "day"},
		[][]string{
			{"1", "1.5", "true", "2024-01-02"},
			{"2", "2", "false", "2024-01-03"},
		},
	)

	out := MicroClean(in)

	want := []models.ColumnType{models.TypeInteger, models.TypeFloat, models.TypeBool, models.TypeDate}
	for i, c := range out.Columns {
		if c.Type != want[i] {
			t.Errorf("column %s type = %s, want %s", c.Name, c.Type, want[i])
		}
	}
}

func TestMicroClean_Idempotent(t *testing.T) {
	tables := []*models.Table{
		table(
			[]string{" name", "name", "", "  total "},
			[][]string{
				{"a ", "x", "", "1,000"},
				{"", "", "", ""},
				{"b", "null", "", "2,500"},
			},
		),
		table([]string{"a"}, [][]string{{"1"}}),
		table([]string{"x", "y"}, [][]string{}),
	}

	for i, in := range tables {
		once := MicroClean(in)
		twice := MicroClean(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("table %d: MicroClean is not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}

func TestMicroClean_DoesNotMutateInput(t *testing.T) {
	in := table([]string{" name "}, [][]string{{" a "}})

	MicroClean(in)

	if in.Columns[0].Name != " name " || in.Rows[0][0] != " a " {
		t.Error("input table was mutated")
	}
}
