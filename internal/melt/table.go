package melt

import (
	"fmt"

	"meltr/internal/collector"
	"meltr/internal/diag"
)

// Table is one melted chunk: the four fixed columns plus the warnings
// accumulated while producing them. Columns are immutable views extracted
// from the collectors; the table owns them from assembly on.
type Table struct {
	Names    []string
	Columns  []collector.Column
	Warnings []diag.Warning
}

// NumRows returns the number of output rows.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Row returns the 1-based source row of output row i.
func (t *Table) Row(i int) int {
	return t.Columns[0].(collector.IntColumn).At(i)
}

// Col returns the 1-based source column of output row i.
func (t *Table) Col(i int) int {
	return t.Columns[1].(collector.IntColumn).At(i)
}

// DataType returns the inferred type tag of output row i.
func (t *Table) DataType(i int) string {
	s, _ := t.Columns[2].(collector.CharacterColumn).At(i)
	return s
}

// Value returns the textual payload of output row i and whether the cell
// was missing.
func (t *Table) Value(i int) (string, bool) {
	return t.Columns[3].(collector.CharacterColumn).At(i)
}

// Concat merges chunk tables in order into a single table. All inputs must
// share the same column names; warnings are concatenated.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{Names: meltNames}, nil
	}
	if len(tables) == 1 {
		return tables[0], nil
	}

	first := tables[0]
	var rows, cols []int
	var types, values []string
	var missing []bool
	var warnings []diag.Warning

	for _, t := range tables {
		if len(t.Names) != len(first.Names) {
			return nil, fmt.Errorf("melt: cannot concat tables with %d and %d columns", len(first.Names), len(t.Names))
		}
		rows = append(rows, t.Columns[0].(collector.IntColumn).Ints()...)
		cols = append(cols, t.Columns[1].(collector.IntColumn).Ints()...)
		typeCol := t.Columns[2].(collector.CharacterColumn)
		valCol := t.Columns[3].(collector.CharacterColumn)
		types = append(types, typeCol.Strings()...)
		values = append(values, valCol.Strings()...)
		missing = append(missing, valCol.Missing()...)
		warnings = append(warnings, t.Warnings...)
	}

	rowC := collector.NewInt()
	colC := collector.NewInt()
	typeC := collector.NewCharacter()
	valC := collector.NewCharacter()
	rowC.Resize(len(rows))
	colC.Resize(len(rows))
	typeC.Resize(len(rows))
	valC.Resize(len(rows))
	for i := range rows {
		rowC.Set(i, rows[i])
		colC.Set(i, cols[i])
		typeC.Set(i, types[i])
		if missing[i] {
			valC.SetMissing(i)
		} else {
			valC.Set(i, values[i])
		}
	}

	return &Table{
		Names:    first.Names,
		Columns:  []collector.Column{rowC.Column(), colC.Column(), typeC.Column(), valC.Column()},
		Warnings: warnings,
	}, nil
}
