// Package cursor provides a lookahead cursor over a rune sequence.
//
// The XMLN decoder's grammar is context-sensitive over a small, fixed
// lookahead (it must peek past an attribute's code to see whether a text
// token follows, and past a tag's code to see whether an "A" token follows).
// Cursor gives it that lookahead without consuming runes, mirroring how the
// original implementation wraps its character iterator in itertools'
// MultiPeek.
package cursor

// Cursor walks a []rune one rune at a time, with unlimited peek-ahead that
// does not advance the read position until Next is called.
type Cursor struct {
	runes []rune
	pos   int
}

// New creates a Cursor over s.
func New(s string) *Cursor {
	return &Cursor{runes: []rune(s)}
}

// Done reports whether the cursor has consumed every rune.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.runes)
}

// Peek returns the rune at offset characters ahead of the current position
// (0 is the next unread rune) and whether that offset is in range.
func (c *Cursor) Peek(offset int) (rune, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.runes) {
		return 0, false
	}

	return c.runes[i], true
}

// Next consumes and returns the next rune, advancing the cursor.
func (c *Cursor) Next() (rune, bool) {
	r, ok := c.Peek(0)
	if ok {
		c.pos++
	}

	return r, ok
}

// ConsumeUntil consumes runes up to (not including) the first one satisfying
// stop, or to the end of input, and returns them as a string.
func (c *Cursor) ConsumeUntil(stop func(rune) bool) string {
	start := c.pos
	for {
		r, ok := c.Peek(0)
		if !ok || stop(r) {
			break
		}
		c.pos++
		_ = r
	}

	return string(c.runes[start:c.pos])
}

// ConsumeUntilSpace consumes runes up to (not including) the next ' ' or end
// of input.
func (c *Cursor) ConsumeUntilSpace() string {
	return c.ConsumeUntil(func(r rune) bool { return r == ' ' })
}
