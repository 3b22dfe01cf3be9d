package melt

import (
	"fmt"

	"meltr/internal/collector"
	"meltr/internal/diag"
)

// TableData is the flat, serialization-friendly form of a Table. It is the
// payload the msgpack output format and the driver's disk cache share.
type TableData struct {
	Names    []string       `msgpack:"names" json:"names"`
	Rows     []int          `msgpack:"rows" json:"rows"`
	Cols     []int          `msgpack:"cols" json:"cols"`
	Types    []string       `msgpack:"types" json:"types"`
	Values   []string       `msgpack:"values" json:"values"`
	Missing  []bool         `msgpack:"missing" json:"missing"`
	Warnings []diag.Warning `msgpack:"warnings" json:"warnings,omitempty"`
}

// Data flattens the table.
func (t *Table) Data() *TableData {
	d := &TableData{
		Names:    t.Names,
		Warnings: t.Warnings,
	}
	if len(t.Columns) == len(meltNames) {
		valCol := t.Columns[3].(collector.CharacterColumn)
		d.Rows = t.Columns[0].(collector.IntColumn).Ints()
		d.Cols = t.Columns[1].(collector.IntColumn).Ints()
		d.Types = t.Columns[2].(collector.CharacterColumn).Strings()
		d.Values = valCol.Strings()
		d.Missing = valCol.Missing()
	}
	return d
}

// FromData rebuilds a Table from its flat form.
func FromData(d *TableData) (*Table, error) {
	n := len(d.Rows)
	if len(d.Cols) != n || len(d.Types) != n || len(d.Values) != n || len(d.Missing) != n {
		return nil, fmt.Errorf("melt: inconsistent column lengths in table data")
	}

	rowC := collector.NewInt()
	colC := collector.NewInt()
	typeC := collector.NewCharacter()
	valC := collector.NewCharacter()
	rowC.Resize(n)
	colC.Resize(n)
	typeC.Resize(n)
	valC.Resize(n)
	for i := 0; i < n; i++ {
		rowC.Set(i, d.Rows[i])
		colC.Set(i, d.Cols[i])
		typeC.Set(i, d.Types[i])
		if d.Missing[i] {
			valC.SetMissing(i)
		} else {
			valC.Set(i, d.Values[i])
		}
	}

	names := d.Names
	if names == nil {
		names = meltNames
	}
	return &Table{
		Names:    names,
		Columns:  []collector.Column{rowC.Column(), colC.Column(), typeC.Column(), valC.Column()},
		Warnings: d.Warnings,
	}, nil
}
