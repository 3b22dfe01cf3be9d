// Package driver wires sources, tokenizers, collectors, and the melter into
// the operations the CLI exposes: melting a file (optionally chunked,
// optionally cached) and dumping its token stream.
package driver

import (
	"errors"
	"io"

	"meltr/internal/collector"
	"meltr/internal/config"
	"meltr/internal/melt"
	"meltr/internal/progress"
	"meltr/internal/source"
	"meltr/internal/tokenizer"
)

// Options configures one melt run.
type Options struct {
	// Config supplies tokenizer, locale, and tuning settings.
	Config config.Config
	// ChunkLines bounds each melt invocation; <= 0 melts the whole source
	// in one call. Overrides Config's chunk_lines when positive.
	ChunkLines int
	// Names optionally renames the four output columns.
	Names []string
	// Progress receives periodic updates; nil disables reporting.
	Progress progress.Reporter
	// Cache, when non-nil, short-circuits repeated melts of unchanged
	// sources.
	Cache *Cache
}

func (o Options) chunkLines() int {
	if o.ChunkLines > 0 {
		return o.ChunkLines
	}
	if o.Config.Tuning.ChunkLines > 0 {
		return o.Config.Tuning.ChunkLines
	}
	return -1
}

// Result is the outcome of melting one source.
type Result struct {
	Source *source.Source
	// Tables holds one table per chunk, in order.
	Tables []*melt.Table
	// Table is the concatenation of all chunks.
	Table *melt.Table
	// FromCache reports whether the result was served from the disk cache.
	FromCache bool
}

// NewCollectors returns the four collectors of a melted table, in role
// order: row, col, data_type, value.
func NewCollectors() []collector.Collector {
	return []collector.Collector{
		collector.NewInt(),
		collector.NewInt(),
		collector.NewCharacter(),
		collector.NewCharacter(),
	}
}

// Melt loads path and melts it to completion.
func Melt(path string, opts Options) (*Result, error) {
	src, err := source.FromFile(path)
	if err != nil {
		return nil, err
	}
	return MeltSource(src, opts)
}

// MeltSource melts an already-loaded source to completion, invoking the
// melter once per chunk until the token stream is exhausted.
func MeltSource(src *source.Source, opts Options) (*Result, error) {
	if opts.Cache != nil {
		if table, ok := opts.Cache.Get(src, opts); ok {
			return &Result{Source: src, Tables: []*melt.Table{table}, Table: table, FromCache: true}, nil
		}
	}

	tok := tokenizer.NewDelim(opts.Config.TokenizerOptions())
	meltOpts := opts.Config.MeltOptions()
	meltOpts.Progress = opts.Progress

	m, err := melt.New(src, tok, NewCollectors(), opts.Names, meltOpts)
	if err != nil {
		return nil, err
	}

	loc := opts.Config.LocaleValue()
	chunk := opts.chunkLines()

	var tables []*melt.Table
	for {
		table, err := m.MeltToTable(loc, chunk)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
		if chunk <= 0 {
			// An unbounded melt consumes everything; the next call
			// would only confirm EOF.
			break
		}
	}

	merged, err := melt.Concat(tables...)
	if err != nil {
		return nil, err
	}

	res := &Result{Source: src, Tables: tables, Table: merged}
	if opts.Cache != nil {
		// Best effort: a failed cache write never fails the melt.
		_ = opts.Cache.Put(src, opts, merged)
	}
	return res, nil
}
