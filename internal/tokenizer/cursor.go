package tokenizer

// cursor is a byte position within a bound [begin, limit) range.
type cursor struct {
	content []byte
	off     uint32
	limit   uint32
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek reads the current byte without consuming it; 0 at end of range.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.content[c.off]
}

// bump consumes and returns the current byte; 0 at end of range.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.content[c.off]
	c.off++
	return b
}

// slice returns the bytes between from and the current offset.
func (c *cursor) slice(from uint32) []byte {
	return c.content[from:c.off]
}
