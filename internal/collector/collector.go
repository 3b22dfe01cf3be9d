// Package collector implements the growable column accumulators the melter
// writes into. The set of column kinds is closed: melted output only ever
// needs integer columns (row, col) and character columns (data_type, value).
// Either kind can be flagged as skipped, which excludes it from output and
// warning wiring.
//
// All collectors supplied to a melter are resized and cleared in lockstep,
// skipped ones included, so a single cell index addresses every column.
package collector

import "meltr/internal/diag"

// Collector is the uniform capability surface the melter drives. Writing
// values goes through the typed setters on the concrete types; an
// out-of-range index there is a programming error and panics.
type Collector interface {
	// Resize grows or shrinks logical size to n, preserving the
	// already-written prefix.
	Resize(n int)
	// Clear releases storage; the collector is logically empty after.
	Clear()
	// Len returns the current logical size.
	Len() int
	// SetWarnings attaches the warning sink. Never called on skipped
	// collectors.
	SetWarnings(bag *diag.Bag)
	// Skip reports whether the column is excluded from output.
	Skip() bool
	// Column hands back an immutable view of the written values for final
	// assembly. The collector must be Resized to the exact cell count
	// first; after Clear the view stays valid.
	Column() Column
}

// Column is a read-only extracted column.
type Column interface {
	Len() int
}
