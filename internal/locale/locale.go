// Package locale carries the per-melt formatting conventions consulted by
// the type guesser: decimal and grouping marks for numbers, reference
// layouts for dates and times, and the time zone names resolve against.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Locale describes how textual values are interpreted during type guessing.
type Locale struct {
	Tag          language.Tag
	DecimalMark  rune
	GroupingMark rune
	// DateFormat and TimeFormat are Go reference layouts.
	DateFormat string
	TimeFormat string
	TZ         string
}

// Default returns the locale used when the caller supplies none: English,
// '.' decimal mark, ',' grouping mark, ISO-8601 date and 24h time, UTC.
func Default() Locale {
	return Locale{
		Tag:          language.English,
		DecimalMark:  '.',
		GroupingMark: ',',
		DateFormat:   "2006-01-02",
		TimeFormat:   "15:04:05",
		TZ:           "UTC",
	}
}

// Location resolves the locale's time zone name.
func (l Locale) Location() (*time.Location, error) {
	if l.TZ == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(l.TZ)
	if err != nil {
		return nil, fmt.Errorf("locale: unknown time zone %q: %w", l.TZ, err)
	}
	return loc, nil
}

// DateTimeFormat returns the combined layout used for datetime guessing.
func (l Locale) DateTimeFormat() string {
	return l.DateFormat + " " + l.TimeFormat
}
