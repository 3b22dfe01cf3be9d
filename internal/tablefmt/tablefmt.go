// Package tablefmt renders melted tables, token dumps, and warnings for the
// CLI: an aligned pretty format for terminals, JSON records, and the
// msgpack payload shared with the disk cache.
package tablefmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"meltr/internal/melt"
	"meltr/internal/token"
)

// Options controls pretty rendering.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// MaxValueWidth truncates long values in pretty output; <= 0 means no
	// truncation.
	MaxValueWidth int
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	typeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// missingDisplay is how a missing cell renders in pretty output.
const missingDisplay = "NA"

// Pretty writes an aligned table with a header row.
func Pretty(w io.Writer, t *melt.Table, opts Options) error {
	n := t.NumRows()

	rowWidth := max(len(t.Names[0]), digits(maxInt(t, 0)))
	colWidth := max(len(t.Names[1]), digits(maxInt(t, 1)))
	typeWidth := len(t.Names[2])
	for i := 0; i < n; i++ {
		typeWidth = max(typeWidth, len(t.DataType(i)))
	}

	header := fmt.Sprintf("%*s  %*s  %-*s  %s",
		rowWidth, t.Names[0], colWidth, t.Names[1], typeWidth, t.Names[2], t.Names[3])
	if opts.Color {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for i := 0; i < n; i++ {
		dataType := t.DataType(i)
		value, missing := t.Value(i)

		display := value
		if missing {
			display = missingDisplay
		} else {
			display = strconv.Quote(value)
		}
		if opts.MaxValueWidth > 0 {
			display = runewidth.Truncate(display, opts.MaxValueWidth, "...")
		}

		typeCell := fmt.Sprintf("%-*s", typeWidth, dataType)
		if opts.Color {
			if missing {
				typeCell = missingStyle.Render(typeCell)
				display = missingStyle.Render(display)
			} else {
				typeCell = typeStyle.Render(typeCell)
			}
		}

		fmt.Fprintf(w, "%*d  %*d  %s  %s\n",
			rowWidth, t.Row(i), colWidth, t.Col(i), typeCell, display)
	}

	return nil
}

// record is one output row in JSON form.
type record struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	DataType string  `json:"data_type"`
	Value    *string `json:"value"`
}

// JSON writes the table as an array of records; missing values encode as
// null.
func JSON(w io.Writer, t *melt.Table) error {
	records := make([]record, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		value, missing := t.Value(i)
		rec := record{
			Row:      t.Row(i),
			Col:      t.Col(i),
			DataType: t.DataType(i),
		}
		if !missing {
			v := value
			rec.Value = &v
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Msgpack writes the table in its flat serialized form.
func Msgpack(w io.Writer, t *melt.Table) error {
	return msgpack.NewEncoder(w).Encode(t.Data())
}

// Tokens writes a numbered token dump, one per line, stopping after EOF.
func Tokens(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-8s at %d:%d", i+1, tok.Kind.String(), tok.Row+1, tok.Col+1)
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintln(w)
		if tok.IsEOF() {
			break
		}
	}
	return nil
}

func digits(v int) int {
	if v <= 0 {
		return 1
	}
	d := 0
	for v > 0 {
		d++
		v /= 10
	}
	return d
}

func maxInt(t *melt.Table, col int) int {
	n := t.NumRows()
	if n == 0 {
		return 0
	}
	best := 0
	for i := 0; i < n; i++ {
		var v int
		if col == 0 {
			v = t.Row(i)
		} else {
			v = t.Col(i)
		}
		if v > best {
			best = v
		}
	}
	return best
}
