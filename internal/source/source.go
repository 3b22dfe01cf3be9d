package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FromFile reads a source from disk, stripping a UTF-8 BOM and normalizing
// CRLF line endings so the tokenizer only ever sees '\n' terminators.
func FromFile(path string) (*Source, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := Flags(0)
	if hadBOM {
		flags |= HadBOM
	}
	if hadCRLF {
		flags |= NormalizedCRLF
	}

	return &Source{
		Path:    path,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}, nil
}

// FromBytes builds an in-memory source. The same BOM/CRLF normalization as
// FromFile applies, so tests and stdin behave identically to disk files.
func FromBytes(name string, content []byte) *Source {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := Virtual
	if hadBOM {
		flags |= HadBOM
	}
	if hadCRLF {
		flags |= NormalizedCRLF
	}

	return &Source{
		Path:    name,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// FromString builds an in-memory source from a string.
func FromString(name, content string) *Source {
	return FromBytes(name, []byte(content))
}

// Begin returns the byte offset of the first significant byte.
func (s *Source) Begin() uint32 {
	return 0
}

// End returns the exclusive byte offset past the last byte.
func (s *Source) End() uint32 {
	end, err := safecast.Conv[uint32](len(s.Content))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return end
}

// Len returns the source size in bytes.
func (s *Source) Len() int {
	return len(s.Content)
}
