// Package diag collects non-fatal scan warnings.
//
// A single Bag is threaded through the tokenizer and the kept collectors for
// the duration of one melt invocation. Fatal conditions are not diagnostics:
// they surface as ordinary error returns from the melter.
package diag
