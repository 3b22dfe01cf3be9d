package diag

import "fmt"

// Warning records one non-fatal problem found while scanning, located at a
// zero-based cell position. Rendering layers convert to 1-based.
type Warning struct {
	Row     int
	Col     int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%d, %d]: %s", w.Row+1, w.Col+1, w.Message)
}
