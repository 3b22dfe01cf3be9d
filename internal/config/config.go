// Package config loads meltr.toml, the optional per-project configuration
// for tokenizer format, locale, and melt tuning. Every field has a default;
// a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"meltr/internal/locale"
	"meltr/internal/melt"
	"meltr/internal/tokenizer"
)

// Config mirrors the meltr.toml layout.
type Config struct {
	Format FormatConfig `toml:"format"`
	Locale LocaleConfig `toml:"locale"`
	Tuning TuningConfig `toml:"tuning"`
}

type FormatConfig struct {
	Delim           string   `toml:"delim"`
	Quote           string   `toml:"quote"`
	NA              []string `toml:"na"`
	Comment         string   `toml:"comment"`
	TrimWS          *bool    `toml:"trim_ws"`
	SkipEmptyRows   *bool    `toml:"skip_empty_rows"`
	EscapeDouble    *bool    `toml:"escape_double"`
	EscapeBackslash bool     `toml:"escape_backslash"`
	QuotedNA        *bool    `toml:"quoted_na"`
}

type LocaleConfig struct {
	DecimalMark  string `toml:"decimal_mark"`
	GroupingMark string `toml:"grouping_mark"`
	DateFormat   string `toml:"date_format"`
	TimeFormat   string `toml:"time_format"`
	TZ           string `toml:"tz"`
}

type TuningConfig struct {
	ChunkLines      int     `toml:"chunk_lines"`
	CellsPerLine    int     `toml:"cells_per_line"`
	DefaultCapacity int     `toml:"default_capacity"`
	Overprovision   float64 `toml:"overprovision"`
	ProgressStep    int     `toml:"progress_step"`
	MaxWarnings     int     `toml:"max_warnings"`
}

// Default returns the configuration used when no meltr.toml exists.
func Default() Config {
	return Config{}
}

// Find walks up from startDir looking for meltr.toml, like the usual
// project-manifest discovery. ok is false when no file was found.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "meltr.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a meltr.toml file.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest meltr.toml, or returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// TokenizerOptions materializes the [format] section over the defaults.
func (c Config) TokenizerOptions() tokenizer.Options {
	opts := tokenizer.DefaultOptions()
	if c.Format.Delim != "" {
		opts.Delim = c.Format.Delim[0]
	}
	if c.Format.Quote != "" {
		opts.Quote = c.Format.Quote[0]
	}
	if c.Format.NA != nil {
		opts.NA = c.Format.NA
	}
	opts.Comment = c.Format.Comment
	if c.Format.TrimWS != nil {
		opts.TrimWS = *c.Format.TrimWS
	}
	if c.Format.SkipEmptyRows != nil {
		opts.SkipEmptyRows = *c.Format.SkipEmptyRows
	}
	if c.Format.EscapeDouble != nil {
		opts.EscapeDouble = *c.Format.EscapeDouble
	}
	opts.EscapeBackslash = c.Format.EscapeBackslash
	if c.Format.QuotedNA != nil {
		opts.QuotedNA = *c.Format.QuotedNA
	}
	return opts
}

// LocaleValue materializes the [locale] section over locale.Default.
func (c Config) LocaleValue() locale.Locale {
	loc := locale.Default()
	if c.Locale.DecimalMark != "" {
		loc.DecimalMark = []rune(c.Locale.DecimalMark)[0]
	}
	if c.Locale.GroupingMark != "" {
		loc.GroupingMark = []rune(c.Locale.GroupingMark)[0]
	}
	if c.Locale.DateFormat != "" {
		loc.DateFormat = c.Locale.DateFormat
	}
	if c.Locale.TimeFormat != "" {
		loc.TimeFormat = c.Locale.TimeFormat
	}
	if c.Locale.TZ != "" {
		loc.TZ = c.Locale.TZ
	}
	return loc
}

// MeltOptions materializes the [tuning] section over melt.DefaultOptions.
func (c Config) MeltOptions() melt.Options {
	opts := melt.DefaultOptions()
	if c.Tuning.CellsPerLine > 0 {
		opts.CellsPerLine = c.Tuning.CellsPerLine
	}
	if c.Tuning.DefaultCapacity > 0 {
		opts.DefaultCapacity = c.Tuning.DefaultCapacity
	}
	if c.Tuning.Overprovision > 1 {
		opts.Overprovision = c.Tuning.Overprovision
	}
	if c.Tuning.ProgressStep > 0 {
		opts.ProgressStep = c.Tuning.ProgressStep
	}
	if c.Tuning.MaxWarnings > 0 {
		opts.MaxWarnings = c.Tuning.MaxWarnings
	}
	return opts
}
