package tokenizer

import (
	"strings"

	"meltr/internal/diag"
	"meltr/internal/source"
	"meltr/internal/token"
)

// Delim tokenizes delimiter-separated text into cell tokens. It is a
// single-pass scanner: every NextToken call consumes exactly one field plus
// its terminator. Positions are zero-based; the melter converts to 1-based.
type Delim struct {
	opts  Options
	cur   cursor
	begin uint32
	row   uint64
	col   uint64
	bag   *diag.Bag
	done  bool
}

// NewDelim creates a delimited-text tokenizer. Tokenize must be called
// before the first NextToken.
func NewDelim(opts Options) *Delim {
	return &Delim{opts: opts}
}

// Tokenize binds the tokenizer to the byte range [begin, end) of src.
func (t *Delim) Tokenize(src *source.Source, begin, end uint32) {
	t.cur = cursor{content: src.Content, off: begin, limit: end}
	t.begin = begin
	t.row = 0
	t.col = 0
	t.done = false
}

// SetWarnings attaches the warning sink.
func (t *Delim) SetWarnings(bag *diag.Bag) { t.bag = bag }

// Progress reports the consumed fraction of the bound range and its size.
func (t *Delim) Progress() (float64, int) {
	total := int(t.cur.limit - t.begin)
	if total == 0 {
		return 1, 0
	}
	return float64(t.cur.off-t.begin) / float64(total), total
}

// NextToken scans one field. After the underlying range is exhausted it
// returns the EOF sentinel forever.
func (t *Delim) NextToken() token.Token {
	if t.done {
		return token.NewEOF(t.row, t.col)
	}

	t.skipLinePrefix()

	if t.cur.eof() {
		t.done = true
		return token.NewEOF(t.row, t.col)
	}

	return t.scanField()
}

// skipLinePrefix consumes comment lines and (optionally) empty rows. Only
// applies at the start of a line so a skipped line never splits a record.
func (t *Delim) skipLinePrefix() {
	for t.col == 0 && !t.cur.eof() {
		if t.opts.Comment != "" && t.hasPrefix(t.opts.Comment) {
			t.skipLine()
			continue
		}
		if t.opts.SkipEmptyRows && isLineEnd(t.cur.peek()) {
			// An empty row produces no tokens and does not advance the
			// row counter, so output row numbers stay gap-free.
			t.bumpLineEnd()
			continue
		}
		break
	}
}

func (t *Delim) scanField() token.Token {
	tokRow, tokCol := t.row, t.col

	var text string
	quoted := false
	if t.opts.Quote != 0 && t.cur.peek() == t.opts.Quote {
		text = t.scanQuoted(tokRow, tokCol)
		quoted = true
	} else {
		from := t.cur.off
		for !t.cur.eof() {
			b := t.cur.peek()
			if b == t.opts.Delim || isLineEnd(b) {
				break
			}
			t.cur.bump()
		}
		text = string(t.cur.slice(from))
		if t.opts.TrimWS {
			text = strings.Trim(text, " \t")
		}
	}

	t.consumeTerminator()

	return t.classify(text, quoted, tokRow, tokCol)
}

// scanQuoted consumes a quoted field including both quotes and returns the
// unescaped content. An unterminated quote consumes to end of input and
// records a warning at the field's position.
func (t *Delim) scanQuoted(tokRow, tokCol uint64) string {
	t.cur.bump() // opening quote

	var sb strings.Builder
	for {
		if t.cur.eof() {
			t.warn(tokRow, tokCol, "unterminated quoted field")
			return sb.String()
		}
		b := t.cur.bump()
		if t.opts.EscapeBackslash && b == '\\' && !t.cur.eof() {
			sb.WriteByte(t.cur.bump())
			continue
		}
		if b == t.opts.Quote {
			if t.opts.EscapeDouble && t.cur.peek() == t.opts.Quote {
				t.cur.bump()
				sb.WriteByte(t.opts.Quote)
				continue
			}
			break
		}
		sb.WriteByte(b)
	}

	// Anything between the closing quote and the next terminator is
	// malformed; consume and warn rather than silently merging it in.
	from := t.cur.off
	for !t.cur.eof() {
		b := t.cur.peek()
		if b == t.opts.Delim || isLineEnd(b) {
			break
		}
		t.cur.bump()
	}
	if t.cur.off != from {
		t.warn(tokRow, tokCol, "trailing characters after closing quote")
	}

	return sb.String()
}

// consumeTerminator eats the delimiter or line end following a field and
// updates the grid position.
func (t *Delim) consumeTerminator() {
	if t.cur.eof() {
		return
	}
	b := t.cur.peek()
	switch {
	case b == t.opts.Delim:
		t.cur.bump()
		t.col++
	case isLineEnd(b):
		t.bumpLineEnd()
		t.row++
		t.col = 0
	}
}

func (t *Delim) classify(text string, quoted bool, row, col uint64) token.Token {
	if (!quoted || t.opts.QuotedNA) && t.isNA(text) {
		return token.NewMissing(row, col)
	}
	if text == "" {
		return token.NewEmpty(row, col)
	}
	return token.NewString(text, row, col)
}

func (t *Delim) isNA(text string) bool {
	for _, na := range t.opts.NA {
		if text == na {
			return true
		}
	}
	return false
}

func (t *Delim) hasPrefix(prefix string) bool {
	rest := t.cur.content[t.cur.off:t.cur.limit]
	return len(rest) >= len(prefix) && string(rest[:len(prefix)]) == prefix
}

func (t *Delim) skipLine() {
	for !t.cur.eof() && !isLineEnd(t.cur.peek()) {
		t.cur.bump()
	}
	if !t.cur.eof() {
		t.bumpLineEnd()
	}
}

// bumpLineEnd consumes one line terminator: \n, or a bare \r (CRLF pairs
// were normalized to \n on source load, so \r\n only appears here when the
// source skipped normalization).
func (t *Delim) bumpLineEnd() {
	if t.cur.bump() == '\r' && t.cur.peek() == '\n' {
		t.cur.bump()
	}
}

func (t *Delim) warn(row, col uint64, msg string) {
	if t.bag != nil {
		t.bag.Warn(int(row), int(col), msg)
	}
}

func isLineEnd(b byte) bool {
	return b == '\n' || b == '\r'
}
