// Package melt implements the chunked melt loop: it pulls tokens from a
// tokenizer, classifies each one, and accumulates a long-format
// (row, col, data_type, value) table in per-column collectors, growing them
// from a running estimate of total cell count.
//
// A Melter is built once per source and melted repeatedly. The entire
// resumption contract between invocations is the pending token (fetched but
// not yet written) and the begun flag; a chunk boundary neither loses nor
// duplicates a cell.
package melt

import (
	"errors"
	"fmt"
	"io"

	"meltr/internal/collector"
	"meltr/internal/diag"
	"meltr/internal/guess"
	"meltr/internal/locale"
	"meltr/internal/source"
	"meltr/internal/token"
	"meltr/internal/tokenizer"
)

// ErrTokenizerContract reports a tokenizer that emitted a non-cell token
// inside the stream. This guards against a contract breach by the
// tokenizer, not against bad input data, and aborts the invocation.
var ErrTokenizerContract = errors.New("melt: tokenizer emitted a non-cell token inside the stream")

// Melter orchestrates one tokenizer and four collectors into melted chunks.
type Melter struct {
	src        *source.Source
	tok        tokenizer.Tokenizer
	collectors []collector.Collector

	// The four fixed roles, positional in collectors.
	rowCol  *collector.Int
	colCol  *collector.Int
	typeCol *collector.Character
	valCol  *collector.Character

	kept     []int
	outNames []string
	bag      *diag.Bag
	opts     Options

	// Resumption state. Nothing else survives between Melt calls.
	pending token.Token
	begun   bool
}

// meltNames are the fixed output column names, in order.
var meltNames = []string{"row", "col", "data_type", "value"}

// New builds a melter over src. cols must hold exactly four collectors in
// role order: row (*collector.Int), col (*collector.Int), data_type
// (*collector.Character), value (*collector.Character). names optionally
// renames the kept output columns and must then match len(cols).
//
// New binds the tokenizer to the source's byte range and wires the warning
// sink into the tokenizer and every non-skipped collector. No tokens are
// fetched.
func New(src *source.Source, tok tokenizer.Tokenizer, cols []collector.Collector, names []string, opts Options) (*Melter, error) {
	if len(cols) != len(meltNames) {
		return nil, fmt.Errorf("melt: want %d collectors, got %d", len(meltNames), len(cols))
	}
	rowCol, ok := cols[0].(*collector.Int)
	if !ok {
		return nil, fmt.Errorf("melt: row collector must be *collector.Int, got %T", cols[0])
	}
	colCol, ok := cols[1].(*collector.Int)
	if !ok {
		return nil, fmt.Errorf("melt: col collector must be *collector.Int, got %T", cols[1])
	}
	typeCol, ok := cols[2].(*collector.Character)
	if !ok {
		return nil, fmt.Errorf("melt: data_type collector must be *collector.Character, got %T", cols[2])
	}
	valCol, ok := cols[3].(*collector.Character)
	if !ok {
		return nil, fmt.Errorf("melt: value collector must be *collector.Character, got %T", cols[3])
	}
	if names != nil && len(names) != len(cols) {
		return nil, fmt.Errorf("melt: want %d column names, got %d", len(cols), len(names))
	}

	opts = opts.withDefaults()
	bag := diag.NewBag(opts.MaxWarnings)

	tok.Tokenize(src, src.Begin(), src.End())
	tok.SetWarnings(bag)

	m := &Melter{
		src:        src,
		tok:        tok,
		collectors: cols,
		rowCol:     rowCol,
		colCol:     colCol,
		typeCol:    typeCol,
		valCol:     valCol,
		bag:        bag,
		opts:       opts,
	}

	// Skip/keep is decided here, once, and is immutable afterwards.
	for j, c := range cols {
		if c.Skip() {
			continue
		}
		m.kept = append(m.kept, j)
		c.SetWarnings(bag)
	}

	for _, j := range m.kept {
		if names != nil {
			m.outNames = append(m.outNames, names[j])
		} else {
			m.outNames = append(m.outNames, meltNames[j])
		}
	}

	return m, nil
}

// Warnings exposes the melter's warning bag.
func (m *Melter) Warnings() *diag.Bag { return m.bag }

// Melt consumes up to maxLines source rows (unbounded when maxLines < 0)
// and writes one output row per token into the collectors. It returns the
// number of cells written, or io.EOF when the token stream was already
// exhausted before this call.
//
// After Melt returns, every collector is sized exactly to the cell count.
// The caller owns the collectors' contents until the next Melt call.
func (m *Melter) Melt(loc locale.Locale, maxLines int) (int, error) {
	if m.begun && m.pending.IsEOF() {
		return 0, io.EOF
	}

	// Initial capacity: a heuristic CellsPerLine cells per requested row,
	// or a generous fixed default for a single-shot melt.
	n := m.opts.DefaultCapacity
	if maxLines >= 0 {
		n = maxLines * m.opts.CellsPerLine
	}
	m.resizeAll(n)

	cells := 0
	var firstRow uint64
	if !m.begun {
		m.pending = m.tok.NextToken()
		m.begun = true
		firstRow = 0
	} else {
		firstRow = m.pending.Row
	}

	for !m.pending.IsEOF() {
		cells++

		if m.opts.Progress != nil && cells%m.opts.ProgressStep == 0 {
			m.opts.Progress.Show(m.tok.Progress())
		}

		// Chunk boundary: stop before writing this token so it stays
		// pending for the next invocation.
		if maxLines >= 0 && m.pending.Row-firstRow >= uint64(maxLines) {
			cells--
			break
		}

		// Grow before write. Estimates only ever grow the capacity;
		// doubling covers the case where the byte fraction is still too
		// small to extrapolate from.
		if cells >= n {
			fraction, _ := m.tok.Progress()
			est := Estimate(cells, fraction, m.opts.Overprovision)
			if est <= n {
				est = n * 2
			}
			n = est
			m.resizeAll(n)
		}

		m.rowCol.Set(cells-1, int(m.pending.Row)+1)
		m.colCol.Set(cells-1, int(m.pending.Col)+1)
		m.valCol.SetToken(cells-1, m.pending)

		switch m.pending.Kind {
		case token.String:
			m.typeCol.Set(cells-1, guess.Guess(m.pending.Text, loc))
		case token.Missing:
			m.typeCol.Set(cells-1, "missing")
		case token.Empty:
			m.typeCol.Set(cells-1, "empty")
		default:
			return 0, ErrTokenizerContract
		}

		m.pending = m.tok.NextToken()
	}

	if m.opts.Progress != nil {
		m.opts.Progress.Show(m.tok.Progress())
		m.opts.Progress.Stop()
	}

	// Shrink to fit: the caller never sees over-allocated tail capacity.
	m.resizeAll(cells)

	return cells, nil
}

// MeltToTable runs one Melt invocation and assembles the result into a
// Table, attaching and then clearing the accumulated warnings so the next
// chunk starts with an empty set. It propagates io.EOF once the stream is
// exhausted.
func (m *Melter) MeltToTable(loc locale.Locale, maxLines int) (*Table, error) {
	if _, err := m.Melt(loc, maxLines); err != nil {
		return nil, err
	}

	columns := make([]collector.Column, 0, len(m.kept))
	for _, j := range m.kept {
		columns = append(columns, m.collectors[j].Column())
	}

	m.bag.Sort()
	t := &Table{
		Names:    m.outNames,
		Columns:  columns,
		Warnings: m.bag.Drain(),
	}

	// The table owns the extracted views now; release collector storage.
	for _, c := range m.collectors {
		c.Clear()
	}

	return t, nil
}

func (m *Melter) resizeAll(n int) {
	for _, c := range m.collectors {
		c.Resize(n)
	}
}
