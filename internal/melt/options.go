package melt

import "meltr/internal/progress"

// Options tunes the melter's allocation and reporting heuristics. None of
// them affects correctness, only how often collectors grow and how often
// the progress reporter fires.
type Options struct {
	// CellsPerLine seeds the initial capacity of a bounded melt:
	// maxLines * CellsPerLine cells.
	CellsPerLine int
	// DefaultCapacity seeds the initial capacity of an unbounded melt.
	DefaultCapacity int
	// Overprovision is the safety margin applied when extrapolating total
	// cell count from partial progress (1.1 = 10% extra).
	Overprovision float64
	// ProgressStep is the cell interval between progress callbacks.
	ProgressStep int
	// MaxWarnings caps the warning bag per melter.
	MaxWarnings int
	// Progress receives periodic updates; nil disables reporting.
	Progress progress.Reporter
}

// DefaultOptions returns the tuning used when the caller supplies nothing.
func DefaultOptions() Options {
	return Options{
		CellsPerLine:    10,
		DefaultCapacity: 10000,
		Overprovision:   1.1,
		ProgressStep:    10000,
		MaxWarnings:     1000,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.CellsPerLine <= 0 {
		o.CellsPerLine = def.CellsPerLine
	}
	if o.DefaultCapacity <= 0 {
		o.DefaultCapacity = def.DefaultCapacity
	}
	if o.Overprovision <= 1 {
		o.Overprovision = def.Overprovision
	}
	if o.ProgressStep <= 0 {
		o.ProgressStep = def.ProgressStep
	}
	if o.MaxWarnings <= 0 {
		o.MaxWarnings = def.MaxWarnings
	}
	return o
}
