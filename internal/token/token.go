package token

// Token represents a single cell with its zero-based grid position.
type Token struct {
	Kind Kind
	Row  uint64
	Col  uint64
	Text string
}

// NewString constructs a String token.
func NewString(text string, row, col uint64) Token {
	return Token{Kind: String, Row: row, Col: col, Text: text}
}

// NewMissing constructs a Missing token.
func NewMissing(row, col uint64) Token {
	return Token{Kind: Missing, Row: row, Col: col}
}

// NewEmpty constructs an Empty token.
func NewEmpty(row, col uint64) Token {
	return Token{Kind: Empty, Row: row, Col: col}
}

// NewEOF constructs the terminal sentinel positioned after the last cell.
func NewEOF(row, col uint64) Token {
	return Token{Kind: EOF, Row: row, Col: col}
}

// IsEOF reports whether the token is the terminal sentinel.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsCell reports whether the token contributes a row to the melted table.
func (t Token) IsCell() bool {
	switch t.Kind {
	case String, Missing, Empty:
		return true
	default:
		return false
	}
}
