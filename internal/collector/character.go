package collector

import (
	"fmt"
	"unicode/utf8"

	"meltr/internal/diag"
	"meltr/internal/token"
)

// Character accumulates string cells (the melted data_type and value
// columns). Missing cells are tracked separately from empty strings so the
// extracted column can tell "NA" apart from "".
type Character struct {
	values  []string
	missing []bool
	skip    bool
	bag     *diag.Bag
}

// NewCharacter creates a character collector.
func NewCharacter() *Character { return &Character{} }

// NewSkippedCharacter creates a character collector excluded from output.
func NewSkippedCharacter() *Character { return &Character{skip: true} }

func (c *Character) Resize(n int) {
	switch {
	case n <= len(c.values):
		c.values = c.values[:n]
		c.missing = c.missing[:n]
	case n <= cap(c.values) && n <= cap(c.missing):
		old := len(c.values)
		c.values = c.values[:n]
		c.missing = c.missing[:n]
		clear(c.values[old:])
		clear(c.missing[old:])
	default:
		values := make([]string, n)
		missing := make([]bool, n)
		copy(values, c.values)
		copy(missing, c.missing)
		c.values = values
		c.missing = missing
	}
}

func (c *Character) Clear() {
	c.values = nil
	c.missing = nil
}

func (c *Character) Len() int { return len(c.values) }

func (c *Character) SetWarnings(bag *diag.Bag) { c.bag = bag }

func (c *Character) Skip() bool { return c.skip }

// Set writes s at index i. i must be reserved by a prior Resize.
func (c *Character) Set(i int, s string) {
	c.values[i] = s
	c.missing[i] = false
}

// SetMissing marks index i as a missing cell.
func (c *Character) SetMissing(i int) {
	c.values[i] = ""
	c.missing[i] = true
}

// SetToken writes the textual payload of t at index i: raw text for String
// tokens, the missing sentinel for Missing, the empty string for Empty.
// Invalid UTF-8 in a String token is recorded as a warning; the bytes are
// stored as-is.
func (c *Character) SetToken(i int, t token.Token) {
	switch t.Kind {
	case token.String:
		if c.bag != nil && !utf8.ValidString(t.Text) {
			c.bag.Warn(int(t.Row), int(t.Col), "invalid UTF-8 in cell")
		}
		c.Set(i, t.Text)
	case token.Missing:
		c.SetMissing(i)
	case token.Empty:
		c.Set(i, "")
	default:
		panic(fmt.Sprintf("collector: cannot store %s token", t.Kind))
	}
}

func (c *Character) Column() Column {
	return CharacterColumn{values: c.values, missing: c.missing}
}

// CharacterColumn is an immutable extracted string column.
type CharacterColumn struct {
	values  []string
	missing []bool
}

func (col CharacterColumn) Len() int { return len(col.values) }

// At returns the value at index i and whether it is missing.
func (col CharacterColumn) At(i int) (string, bool) {
	return col.values[i], col.missing[i]
}

// Strings returns the backing values. Callers must not modify the result.
func (col CharacterColumn) Strings() []string { return col.values }

// Missing returns the per-cell missing flags. Callers must not modify the
// result.
func (col CharacterColumn) Missing() []bool { return col.missing }
