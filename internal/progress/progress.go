// Package progress reports melt progress to the terminal. Reporting is
// synchronous and best-effort: the melter fires Show at a bounded cell
// interval, never per cell, so rendering cannot dominate scan time.
package progress

// Reporter receives periodic progress updates during a melt.
type Reporter interface {
	// Show renders the current state. fraction is the consumed part of
	// the source in [0, 1]; total is the source size in bytes.
	Show(fraction float64, total int)
	// Stop finalizes the display once scanning is complete.
	Stop()
}

// Nop discards all progress updates.
type Nop struct{}

func (Nop) Show(float64, int) {}
func (Nop) Stop()             {}
