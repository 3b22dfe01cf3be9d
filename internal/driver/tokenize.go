package driver

import (
	"meltr/internal/diag"
	"meltr/internal/source"
	"meltr/internal/token"
	"meltr/internal/tokenizer"
)

// TokenizeResult is a full token-stream dump of one source, used by the
// tokenize subcommand for inspecting what the melter would consume.
type TokenizeResult struct {
	Source *source.Source
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize scans path and collects every token up to and including EOF.
func Tokenize(path string, opts Options, maxWarnings int) (*TokenizeResult, error) {
	src, err := source.FromFile(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxWarnings)
	tok := tokenizer.NewDelim(opts.Config.TokenizerOptions())
	tok.Tokenize(src, src.Begin(), src.End())
	tok.SetWarnings(bag)

	var tokens []token.Token
	for {
		t := tok.NextToken()
		tokens = append(tokens, t)
		if t.IsEOF() {
			break
		}
	}

	return &TokenizeResult{
		Source: src,
		Tokens: tokens,
		Bag:    bag,
	}, nil
}
