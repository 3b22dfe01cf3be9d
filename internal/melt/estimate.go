package melt

import "math"

// Estimate extrapolates the total cell count of a source from the cells
// written so far and the fraction of the source the tokenizer has consumed,
// padded by the overprovision factor. It returns 0 when the fraction is not
// yet meaningful; the caller falls back to doubling in that case.
func Estimate(cells int, fraction float64, factor float64) int {
	if cells <= 0 || fraction <= 0 {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if factor < 1 {
		factor = 1
	}
	return int(math.Ceil(float64(cells) / fraction * factor))
}
