package collector

import "meltr/internal/diag"

// Int accumulates integer cells (the melted row and col columns).
type Int struct {
	values []int
	skip   bool
	bag    *diag.Bag
}

// NewInt creates an integer collector.
func NewInt() *Int { return &Int{} }

// NewSkippedInt creates an integer collector excluded from output.
func NewSkippedInt() *Int { return &Int{skip: true} }

func (c *Int) Resize(n int) {
	switch {
	case n <= len(c.values):
		c.values = c.values[:n]
	case n <= cap(c.values):
		old := len(c.values)
		c.values = c.values[:n]
		clear(c.values[old:])
	default:
		grown := make([]int, n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *Int) Clear() {
	c.values = nil
}

func (c *Int) Len() int { return len(c.values) }

func (c *Int) SetWarnings(bag *diag.Bag) { c.bag = bag }

func (c *Int) Skip() bool { return c.skip }

// Set writes v at index i. i must be reserved by a prior Resize.
func (c *Int) Set(i, v int) {
	c.values[i] = v
}

func (c *Int) Column() Column {
	return IntColumn{values: c.values}
}

// IntColumn is an immutable extracted integer column.
type IntColumn struct {
	values []int
}

func (col IntColumn) Len() int { return len(col.values) }

// At returns the value at index i.
func (col IntColumn) At(i int) int { return col.values[i] }

// Ints returns the backing values. Callers must not modify the result.
func (col IntColumn) Ints() []int { return col.values }
