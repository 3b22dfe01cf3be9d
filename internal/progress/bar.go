package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// Bar renders a single-line progress bar by repainting over a carriage
// return. Repaints are rate-limited so a fast melt over a small source does
// not flood the terminal.
type Bar struct {
	w         io.Writer
	label     string
	width     int
	minDelay  time.Duration
	lastDraw  time.Time
	lastTotal int
	drawn     bool
}

// NewBar creates a bar writing to w. width is the total cell count of the
// bar segment; labels render to its left.
func NewBar(w io.Writer, label string, width int) *Bar {
	if width <= 0 {
		width = 40
	}
	return &Bar{
		w:        w,
		label:    label,
		width:    width,
		minDelay: 100 * time.Millisecond,
	}
}

func (b *Bar) Show(fraction float64, total int) {
	now := time.Now()
	if b.drawn && now.Sub(b.lastDraw) < b.minDelay && fraction < 1 {
		return
	}
	b.lastDraw = now
	b.lastTotal = total
	b.drawn = true

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction * float64(b.width))
	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", b.width-filled))

	label := runewidth.Truncate(b.label, 20, "...")
	fmt.Fprintf(b.w, "\r%s %s %3.0f%% of %s",
		barLabelStyle.Render(runewidth.FillRight(label, 20)),
		bar, fraction*100, humanBytes(total))
}

// Stop completes the bar at 100% and moves to a fresh line.
func (b *Bar) Stop() {
	if !b.drawn {
		return
	}
	b.lastDraw = time.Time{}
	b.Show(1, b.lastTotal)
	fmt.Fprintln(b.w)
	b.drawn = false
}

func humanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
