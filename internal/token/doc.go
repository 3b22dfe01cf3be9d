// Package token defines the lexical cell tokens produced by the tokenizer.
// Invariants:
//   - Tokens are emitted in row-major, left-to-right order.
//   - Row and Col are zero-based; the melt output converts them to 1-based.
//   - EOF is a terminal sentinel: once emitted, every subsequent NextToken
//     call returns EOF again. It never appears in the melted table.
//   - Text is only meaningful for String tokens; Missing and Empty carry
//     position only.
package token
