package diag

import "sort"

// Bag is an append-only warning sink with a capacity limit. The tokenizer
// and every kept collector share one Bag per melt invocation; the melter
// drains it into the output table and clears it between chunks.
type Bag struct {
	items     []Warning
	max       int
	truncated int
}

// NewBag creates a Bag holding at most max warnings. A non-positive max
// yields a bag that drops everything.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Warning, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends a warning, honoring the limit.
// Returns false if the warning was dropped because the limit was reached.
func (b *Bag) Add(w Warning) bool {
	if len(b.items) >= b.max {
		b.truncated++
		return false
	}
	b.items = append(b.items, w)
	return true
}

// Warn is shorthand for Add with a freshly built Warning.
func (b *Bag) Warn(row, col int, msg string) bool {
	return b.Add(Warning{Row: row, Col: col, Message: msg})
}

// Cap returns the configured limit.
func (b *Bag) Cap() int {
	return b.max
}

// Len returns the number of retained warnings.
func (b *Bag) Len() int {
	return len(b.items)
}

// Truncated returns how many warnings were dropped over the limit.
func (b *Bag) Truncated() int {
	return b.truncated
}

// Items returns a read-only view of the retained warnings.
// Do not modify the returned slice; it aliases the Bag's storage.
func (b *Bag) Items() []Warning {
	return b.items
}

// Drain returns the retained warnings and resets the Bag to empty, so a
// subsequent scan starts with a clean warning set.
func (b *Bag) Drain() []Warning {
	out := b.items
	b.items = make([]Warning, 0, min(b.max, 64))
	b.truncated = 0
	return out
}

// Clear discards all retained warnings.
func (b *Bag) Clear() {
	b.items = b.items[:0]
	b.truncated = 0
}

// Sort orders warnings by row, then col, then message, for deterministic
// output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		wi, wj := b.items[i], b.items[j]
		if wi.Row != wj.Row {
			return wi.Row < wj.Row
		}
		if wi.Col != wj.Col {
			return wi.Col < wj.Col
		}
		return wi.Message < wj.Message
	})
}
