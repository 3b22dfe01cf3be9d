package source

type (
	// Flags encodes metadata about how a source was loaded.
	Flags uint8
)

const (
	// Virtual indicates the source was built from memory (test, stdin).
	Virtual Flags = 1 << iota
	// HadBOM indicates a UTF-8 byte order mark was stripped on load.
	HadBOM
	// NormalizedCRLF indicates CRLF line endings were rewritten to LF.
	NormalizedCRLF
)

// Source holds the raw bytes of one delimited-text input. The melt core
// never reads Content directly; it addresses the bytes through the
// Begin/End cursor pair handed to the tokenizer.
type Source struct {
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   Flags
}
