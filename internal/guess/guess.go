// Package guess implements per-value semantic type detection for string
// cells. The checks run from most to least specific; the first match wins
// and "character" is the fallback.
package guess

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"meltr/internal/locale"
)

// Type tags returned by Guess, ordered by specificity.
const (
	TypeLogical   = "logical"
	TypeInteger   = "integer"
	TypeDouble    = "double"
	TypeNumber    = "number"
	TypeTime      = "time"
	TypeDate      = "date"
	TypeDatetime  = "datetime"
	TypeCharacter = "character"
)

// Guess classifies one textual cell value under the given locale.
// It never returns "missing" or "empty"; those tags are reserved for the
// corresponding token kinds and assigned by the melter directly.
func Guess(text string, loc locale.Locale) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TypeCharacter
	}

	switch {
	case isLogical(trimmed):
		return TypeLogical
	case isInteger(trimmed):
		return TypeInteger
	case isDouble(trimmed, loc):
		return TypeDouble
	case isNumber(trimmed, loc):
		return TypeNumber
	case isTime(trimmed, loc):
		return TypeTime
	case isDate(trimmed, loc):
		return TypeDate
	case isDatetime(trimmed, loc):
		return TypeDatetime
	default:
		return TypeCharacter
	}
}

func isLogical(s string) bool {
	switch s {
	case "T", "F", "TRUE", "FALSE", "True", "False", "true", "false":
		return true
	default:
		return false
	}
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isDouble accepts plain floating point values spelled with the locale's
// decimal mark, without grouping marks.
func isDouble(s string, loc locale.Locale) bool {
	if loc.DecimalMark != '.' {
		if strings.ContainsRune(s, '.') {
			return false
		}
		s = strings.ReplaceAll(s, string(loc.DecimalMark), ".")
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isNumber accepts values that parse as a double once grouping marks and a
// surrounding currency or percent decoration are removed, e.g. "$1,234.50"
// or "12%". A bare double is not a "number": isDouble claims it first.
func isNumber(s string, loc locale.Locale) bool {
	// Only symbol decoration may be stripped; letters stay, so "12abc"
	// falls through to character.
	stripped := strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && !unicode.IsLetter(r) && r != '-' && r != '+'
	})
	stripped = strings.ReplaceAll(stripped, string(loc.GroupingMark), "")
	if loc.DecimalMark != '.' {
		stripped = strings.ReplaceAll(stripped, string(loc.DecimalMark), ".")
	}
	if stripped == "" {
		return false
	}
	// Nothing was stripped and no grouping marks: isDouble already had its
	// chance, so this is not a decorated number.
	if stripped == s && !strings.ContainsRune(s, loc.GroupingMark) {
		return false
	}
	_, err := strconv.ParseFloat(stripped, 64)
	return err == nil
}

func isTime(s string, loc locale.Locale) bool {
	if _, err := time.Parse(loc.TimeFormat, s); err == nil {
		return true
	}
	// Seconds are optional.
	_, err := time.Parse("15:04", s)
	return err == nil
}

func isDate(s string, loc locale.Locale) bool {
	_, err := time.Parse(loc.DateFormat, s)
	return err == nil
}

func isDatetime(s string, loc locale.Locale) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse(loc.DateTimeFormat(), s)
	return err == nil
}
