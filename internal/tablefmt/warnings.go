package tablefmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"meltr/internal/diag"
)

var (
	warnTagColor = color.New(color.FgYellow, color.Bold)
	warnPosColor = color.New(color.FgCyan)
)

// Warnings renders the warning block, one warning per line with its
// 1-based cell position.
func Warnings(w io.Writer, warnings []diag.Warning, useColor bool) {
	if len(warnings) == 0 {
		return
	}

	prevNoColor := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prevNoColor }()

	warnTagColor.Fprintf(w, "%d warning(s):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprint(w, "  ")
		warnPosColor.Fprintf(w, "[%d, %d]", warning.Row+1, warning.Col+1)
		fmt.Fprintf(w, " %s\n", warning.Message)
	}
}
