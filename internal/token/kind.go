package token

// Kind represents the category of a cell token.
type Kind uint8

const (
	// Invalid indicates a token that was never produced by a tokenizer.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// String is a cell with textual content.
	String
	// Missing is a cell whose content matched one of the configured
	// missing-value strings (e.g. "NA").
	Missing
	// Empty is a cell with zero-length content.
	Empty
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "INVALID"
	case EOF:
		return "EOF"
	case String:
		return "STRING"
	case Missing:
		return "MISSING"
	case Empty:
		return "EMPTY"
	}
	return "UNKNOWN"
}
