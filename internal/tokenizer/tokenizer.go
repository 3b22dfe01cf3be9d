// Package tokenizer turns raw delimited-text bytes into an ordered stream
// of cell tokens. The melter consumes tokenizers purely through the
// Tokenizer interface; Delim is the production implementation.
package tokenizer

import (
	"meltr/internal/diag"
	"meltr/internal/source"
	"meltr/internal/token"
)

// Tokenizer produces the ordered token stream for one source.
//
// Progress must be monotonically non-decreasing across NextToken calls; the
// melter's growth estimation extrapolates total cell count from it.
type Tokenizer interface {
	// Tokenize binds the tokenizer to the byte range [begin, end) of src.
	// It must be called exactly once, before the first NextToken.
	Tokenize(src *source.Source, begin, end uint32)
	// NextToken returns the next token. After the EOF sentinel has been
	// returned, every further call returns EOF again.
	NextToken() token.Token
	// Progress reports the fraction of the bound byte range consumed so
	// far, in [0, 1], and the total range size in bytes.
	Progress() (float64, int)
	// SetWarnings attaches the sink for non-fatal scan problems.
	SetWarnings(bag *diag.Bag)
}
