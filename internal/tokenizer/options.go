package tokenizer

// Options configures the delimited-text tokenizer.
type Options struct {
	// Delim is the field separator.
	Delim byte
	// Quote is the quoting character. Zero disables quote handling.
	Quote byte
	// EscapeDouble treats a doubled quote inside a quoted field as a
	// literal quote.
	EscapeDouble bool
	// EscapeBackslash treats a backslash as an escape character inside
	// quoted fields.
	EscapeBackslash bool
	// NA lists the strings classified as missing cells.
	NA []string
	// QuotedNA extends NA matching to quoted fields.
	QuotedNA bool
	// Comment, when non-empty, marks whole lines starting with the prefix
	// as skipped.
	Comment string
	// TrimWS strips leading and trailing blanks from unquoted fields
	// before classification.
	TrimWS bool
	// SkipEmptyRows drops lines with no content instead of emitting a
	// single empty cell, without advancing the row counter.
	SkipEmptyRows bool
}

// DefaultOptions returns the conventional CSV configuration: comma
// separated, double-quote quoting with doubled-quote escapes, "NA" as the
// missing marker, empty rows skipped.
func DefaultOptions() Options {
	return Options{
		Delim:         ',',
		Quote:         '"',
		EscapeDouble:  true,
		NA:            []string{"NA"},
		QuotedNA:      true,
		TrimWS:        true,
		SkipEmptyRows: true,
	}
}
