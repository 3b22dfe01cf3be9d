package melt_test

import (
	"errors"
	"io"
	"testing"

	"meltr/internal/collector"
	"meltr/internal/diag"
	"meltr/internal/locale"
	"meltr/internal/melt"
	"meltr/internal/source"
	"meltr/internal/token"
)

// fakeTokenizer replays a fixed token slice and reports progress as the
// fraction of tokens consumed, mirroring the byte-fraction contract.
type fakeTokenizer struct {
	tokens []token.Token
	next   int
	bag    *diag.Bag
	bound  bool
}

func (f *fakeTokenizer) Tokenize(src *source.Source, begin, end uint32) {
	f.bound = true
	f.next = 0
}

func (f *fakeTokenizer) NextToken() token.Token {
	if f.next >= len(f.tokens) {
		last := f.tokens[len(f.tokens)-1]
		return token.NewEOF(last.Row, last.Col)
	}
	t := f.tokens[f.next]
	f.next++
	return t
}

func (f *fakeTokenizer) Progress() (float64, int) {
	if len(f.tokens) == 0 {
		return 1, 0
	}
	return float64(f.next) / float64(len(f.tokens)), len(f.tokens)
}

func (f *fakeTokenizer) SetWarnings(bag *diag.Bag) { f.bag = bag }

// grid builds the token stream of a rows x cols source of plain strings.
func grid(rows, cols int) []token.Token {
	var tokens []token.Token
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tokens = append(tokens, token.NewString("x", uint64(r), uint64(c)))
		}
	}
	tokens = append(tokens, token.NewEOF(uint64(rows), 0))
	return tokens
}

func newTestMelter(t *testing.T, tokens []token.Token, opts melt.Options) (*melt.Melter, []collector.Collector) {
	t.Helper()
	cols := []collector.Collector{
		collector.NewInt(),
		collector.NewInt(),
		collector.NewCharacter(),
		collector.NewCharacter(),
	}
	src := source.FromString("test.csv", "unused")
	m, err := melt.New(src, &fakeTokenizer{tokens: tokens}, cols, nil, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, cols
}

func TestMeltUnbounded(t *testing.T) {
	m, cols := newTestMelter(t, grid(3, 2), melt.Options{})

	n, err := m.Melt(locale.Default(), -1)
	if err != nil {
		t.Fatalf("Melt: %v", err)
	}
	if n != 6 {
		t.Fatalf("Melt returned %d cells, want 6", n)
	}

	wantRows := []int{1, 1, 2, 2, 3, 3}
	wantCols := []int{1, 2, 1, 2, 1, 2}
	rowCol := cols[0].Column().(collector.IntColumn)
	colCol := cols[1].Column().(collector.IntColumn)
	for i := 0; i < 6; i++ {
		if rowCol.At(i) != wantRows[i] {
			t.Errorf("row[%d] = %d, want %d", i, rowCol.At(i), wantRows[i])
		}
		if colCol.At(i) != wantCols[i] {
			t.Errorf("col[%d] = %d, want %d", i, colCol.At(i), wantCols[i])
		}
	}

	// Shrink-to-fit: capacity exactly matches produced rows.
	for j, c := range cols {
		if c.Len() != 6 {
			t.Errorf("collector %d sized %d after melt, want 6", j, c.Len())
		}
	}

	// The stream is exhausted now.
	if _, err := m.Melt(locale.Default(), -1); !errors.Is(err, io.EOF) {
		t.Errorf("second Melt error = %v, want io.EOF", err)
	}
}

func TestMeltChunked(t *testing.T) {
	m, cols := newTestMelter(t, grid(3, 2), melt.Options{})

	n, err := m.Melt(locale.Default(), 2)
	if err != nil {
		t.Fatalf("first chunk: %v", err)
	}
	if n != 4 {
		t.Fatalf("first chunk produced %d cells, want 4", n)
	}
	rowCol := cols[0].Column().(collector.IntColumn)
	if got := rowCol.At(3); got != 2 {
		t.Errorf("last row of first chunk = %d, want 2", got)
	}

	n, err = m.Melt(locale.Default(), 2)
	if err != nil {
		t.Fatalf("second chunk: %v", err)
	}
	if n != 2 {
		t.Fatalf("second chunk produced %d cells, want 2", n)
	}
	rowCol = cols[0].Column().(collector.IntColumn)
	if got := rowCol.At(0); got != 3 {
		t.Errorf("first row of second chunk = %d, want 3", got)
	}

	if _, err := m.Melt(locale.Default(), 2); !errors.Is(err, io.EOF) {
		t.Errorf("third chunk error = %v, want io.EOF", err)
	}
}

// TestMeltChunkedMatchesUnbounded checks resumption loses nothing and
// duplicates nothing: chunked output concatenated equals the single melt.
func TestMeltChunkedMatchesUnbounded(t *testing.T) {
	tokens := []token.Token{
		token.NewString("a", 0, 0),
		token.NewMissing(0, 1),
		token.NewEmpty(1, 0),
		token.NewString("42", 1, 1),
		token.NewString("2.5", 2, 0),
		token.NewString("x", 2, 1),
		token.NewString("tail", 3, 0),
		token.NewEOF(4, 0),
	}

	single, err := meltAll(t, tokens, -1)
	if err != nil {
		t.Fatalf("unbounded melt: %v", err)
	}

	for _, chunkLines := range []int{1, 2, 3, 100} {
		chunked, err := meltAll(t, tokens, chunkLines)
		if err != nil {
			t.Fatalf("chunked melt (%d lines): %v", chunkLines, err)
		}
		if len(chunked) != len(single) {
			t.Fatalf("chunkLines=%d: got %d rows, want %d", chunkLines, len(chunked), len(single))
		}
		for i := range single {
			if chunked[i] != single[i] {
				t.Errorf("chunkLines=%d row %d: got %+v, want %+v", chunkLines, i, chunked[i], single[i])
			}
		}
	}
}

type meltedRow struct {
	Row, Col        int
	DataType, Value string
	Missing         bool
}

// meltAll melts the stream to exhaustion with the given chunk size and
// flattens the chunk tables into comparable rows.
func meltAll(t *testing.T, tokens []token.Token, maxLines int) ([]meltedRow, error) {
	t.Helper()
	m, _ := newTestMelter(t, tokens, melt.Options{})

	var rows []meltedRow
	for {
		table, err := m.MeltToTable(locale.Default(), maxLines)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		for i := 0; i < table.NumRows(); i++ {
			value, missing := table.Value(i)
			rows = append(rows, meltedRow{
				Row:      table.Row(i),
				Col:      table.Col(i),
				DataType: table.DataType(i),
				Value:    value,
				Missing:  missing,
			})
		}
		if maxLines < 0 {
			return rows, nil
		}
	}
}

func TestMeltTokenDispatch(t *testing.T) {
	tokens := []token.Token{
		token.NewString("TRUE", 0, 0),
		token.NewString("42", 0, 1),
		token.NewMissing(0, 2),
		token.NewEmpty(0, 3),
		token.NewEOF(1, 0),
	}
	m, _ := newTestMelter(t, tokens, melt.Options{})

	table, err := m.MeltToTable(locale.Default(), -1)
	if err != nil {
		t.Fatalf("MeltToTable: %v", err)
	}

	wantTypes := []string{"logical", "integer", "missing", "empty"}
	for i, want := range wantTypes {
		if got := table.DataType(i); got != want {
			t.Errorf("data_type[%d] = %q, want %q", i, got, want)
		}
	}

	if _, missing := table.Value(2); !missing {
		t.Error("missing token did not produce a missing value cell")
	}
	if value, missing := table.Value(3); missing || value != "" {
		t.Errorf("empty token produced (%q, %v), want (\"\", false)", value, missing)
	}
	if got := table.NumRows(); got != 4 {
		t.Errorf("NumRows = %d, want 4", got)
	}
	if len(table.Names) != 4 || table.Names[2] != "data_type" {
		t.Errorf("unexpected column names: %v", table.Names)
	}
}

func TestMeltGrowth(t *testing.T) {
	// A tiny initial capacity forces the growth path several times.
	m, cols := newTestMelter(t, grid(50, 4), melt.Options{DefaultCapacity: 1})

	n, err := m.Melt(locale.Default(), -1)
	if err != nil {
		t.Fatalf("Melt: %v", err)
	}
	if n != 200 {
		t.Fatalf("Melt returned %d cells, want 200", n)
	}
	for j, c := range cols {
		if c.Len() != 200 {
			t.Errorf("collector %d sized %d, want 200", j, c.Len())
		}
	}
}

func TestMeltZeroRows(t *testing.T) {
	tokens := []token.Token{token.NewEOF(0, 0)}
	m, cols := newTestMelter(t, tokens, melt.Options{})

	n, err := m.Melt(locale.Default(), -1)
	if err != nil {
		t.Fatalf("Melt: %v", err)
	}
	if n != 0 {
		t.Fatalf("Melt returned %d cells, want 0", n)
	}
	for j, c := range cols {
		if c.Len() != 0 {
			t.Errorf("collector %d sized %d after empty melt, want 0", j, c.Len())
		}
	}

	if _, err := m.Melt(locale.Default(), -1); !errors.Is(err, io.EOF) {
		t.Errorf("second Melt error = %v, want io.EOF", err)
	}
}

func TestMeltTokenizerContract(t *testing.T) {
	tokens := []token.Token{
		token.NewString("a", 0, 0),
		{Kind: token.Invalid, Row: 0, Col: 1},
		token.NewEOF(1, 0),
	}
	m, _ := newTestMelter(t, tokens, melt.Options{})

	_, err := m.Melt(locale.Default(), -1)
	if !errors.Is(err, melt.ErrTokenizerContract) {
		t.Fatalf("Melt error = %v, want ErrTokenizerContract", err)
	}
}

func TestMeltWarningsClearedPerChunk(t *testing.T) {
	tokens := grid(4, 1)
	m, _ := newTestMelter(t, tokens, melt.Options{})

	m.Warnings().Warn(0, 0, "first chunk problem")
	table, err := m.MeltToTable(locale.Default(), 2)
	if err != nil {
		t.Fatalf("first chunk: %v", err)
	}
	if len(table.Warnings) != 1 {
		t.Fatalf("first chunk carried %d warnings, want 1", len(table.Warnings))
	}

	table, err = m.MeltToTable(locale.Default(), 2)
	if err != nil {
		t.Fatalf("second chunk: %v", err)
	}
	if len(table.Warnings) != 0 {
		t.Errorf("second chunk carried %d warnings, want 0", len(table.Warnings))
	}
}

func TestNewValidatesCollectors(t *testing.T) {
	src := source.FromString("test.csv", "")
	tok := &fakeTokenizer{tokens: []token.Token{token.NewEOF(0, 0)}}

	_, err := melt.New(src, tok, []collector.Collector{collector.NewInt()}, nil, melt.Options{})
	if err == nil {
		t.Error("New accepted a single collector, want error")
	}

	badRoles := []collector.Collector{
		collector.NewCharacter(),
		collector.NewInt(),
		collector.NewCharacter(),
		collector.NewCharacter(),
	}
	if _, err := melt.New(src, tok, badRoles, nil, melt.Options{}); err == nil {
		t.Error("New accepted a character collector in the row role, want error")
	}

	good := []collector.Collector{
		collector.NewInt(), collector.NewInt(),
		collector.NewCharacter(), collector.NewCharacter(),
	}
	if _, err := melt.New(src, tok, good, []string{"only-one"}, melt.Options{}); err == nil {
		t.Error("New accepted mismatched column names, want error")
	}
}
