package melt_test

import (
	"testing"

	"meltr/internal/collector"
	"meltr/internal/diag"
	"meltr/internal/melt"
)

func buildTable(t *testing.T, rows, cols []int, types, values []string, missing []bool) *melt.Table {
	t.Helper()
	tbl, err := melt.FromData(&melt.TableData{
		Rows: rows, Cols: cols, Types: types, Values: values, Missing: missing,
	})
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	return tbl
}

func TestConcat(t *testing.T) {
	a := buildTable(t,
		[]int{1, 1}, []int{1, 2},
		[]string{"integer", "character"}, []string{"5", "x"}, []bool{false, false})
	a.Warnings = []diag.Warning{{Row: 0, Col: 1, Message: "w1"}}
	b := buildTable(t,
		[]int{2}, []int{1},
		[]string{"missing"}, []string{""}, []bool{true})
	b.Warnings = []diag.Warning{{Row: 1, Col: 0, Message: "w2"}}

	merged, err := melt.Concat(a, b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if merged.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", merged.NumRows())
	}
	if merged.Row(2) != 2 || merged.Col(2) != 1 {
		t.Errorf("row 2 at (%d,%d), want (2,1)", merged.Row(2), merged.Col(2))
	}
	if merged.DataType(2) != "missing" {
		t.Errorf("row 2 type = %q", merged.DataType(2))
	}
	if _, missing := merged.Value(2); !missing {
		t.Error("row 2 lost its missing flag")
	}
	if v, _ := merged.Value(1); v != "x" {
		t.Errorf("row 1 value = %q, want %q", v, "x")
	}
	if len(merged.Warnings) != 2 {
		t.Errorf("merged %d warnings, want 2", len(merged.Warnings))
	}
}

func TestConcatSingleAndEmpty(t *testing.T) {
	empty, err := melt.Concat()
	if err != nil {
		t.Fatalf("Concat(): %v", err)
	}
	if empty.NumRows() != 0 {
		t.Errorf("empty concat has %d rows", empty.NumRows())
	}
	if len(empty.Names) != 4 {
		t.Errorf("empty concat names = %v", empty.Names)
	}

	single := buildTable(t, []int{1}, []int{1}, []string{"integer"}, []string{"7"}, []bool{false})
	got, err := melt.Concat(single)
	if err != nil {
		t.Fatalf("Concat(single): %v", err)
	}
	if got != single {
		t.Error("single-table concat did not return the input")
	}
}

func TestDataRoundtrip(t *testing.T) {
	tbl := buildTable(t,
		[]int{1, 2}, []int{1, 1},
		[]string{"double", "missing"}, []string{"3.5", ""}, []bool{false, true})
	tbl.Warnings = []diag.Warning{{Row: 0, Col: 0, Message: "w"}}

	back, err := melt.FromData(tbl.Data())
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if back.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", back.NumRows())
	}
	for i := 0; i < 2; i++ {
		wv, wm := tbl.Value(i)
		gv, gm := back.Value(i)
		if back.Row(i) != tbl.Row(i) || back.Col(i) != tbl.Col(i) ||
			back.DataType(i) != tbl.DataType(i) || gv != wv || gm != wm {
			t.Errorf("cell %d differs after roundtrip", i)
		}
	}
	if len(back.Warnings) != 1 || back.Warnings[0].Message != "w" {
		t.Errorf("warnings = %v", back.Warnings)
	}
}

func TestFromDataRejectsRaggedColumns(t *testing.T) {
	_, err := melt.FromData(&melt.TableData{
		Rows: []int{1, 2}, Cols: []int{1},
		Types: []string{"integer"}, Values: []string{"1"}, Missing: []bool{false},
	})
	if err == nil {
		t.Error("FromData accepted ragged columns")
	}
}

func TestTableColumnViews(t *testing.T) {
	tbl := buildTable(t, []int{1}, []int{2}, []string{"integer"}, []string{"9"}, []bool{false})
	rows, ok := tbl.Columns[0].(collector.IntColumn)
	if !ok {
		t.Fatal("row column is not an IntColumn")
	}
	if rows.Len() != 1 || rows.At(0) != 1 {
		t.Errorf("row column = %v", rows.Ints())
	}
	vals, ok := tbl.Columns[3].(collector.CharacterColumn)
	if !ok {
		t.Fatal("value column is not a CharacterColumn")
	}
	if v, missing := vals.At(0); v != "9" || missing {
		t.Errorf("value = (%q, %v)", v, missing)
	}
}
