// Package cursor provides a forward-only reader over a borrowed byte slice.
//
// A Cursor never copies or mutates the slice it reads. Checked operations
// report end of input through a boolean instead of failing. The *Unchecked
// variants skip the bounds check and require the caller to have already
// confirmed that enough bytes remain (for example with HasNext or Peek);
// calling them without that guarantee is a programming error and panics.
package cursor

// Cursor reads a byte slice from start to end.
//
// The zero value is an empty cursor that is already at end.
type Cursor struct {
	buf []byte
	off int
}

// New returns a cursor positioned at the first byte of buf.
// buf is borrowed, not copied, and must not be modified while the cursor is in use.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// BytesConsumed returns the number of bytes read so far.
func (c *Cursor) BytesConsumed() int {
	return c.off
}

// BytesRemaining returns the number of unread bytes.
func (c *Cursor) BytesRemaining() int {
	return len(c.buf) - c.off
}

// HasNext reports whether at least one unread byte remains.
func (c *Cursor) HasNext() bool {
	return c.off < len(c.buf)
}

// Bytes returns the unread remainder of the buffer without copying it.
func (c *Cursor) Bytes() []byte {
	return c.buf[c.off:]
}

// Reset moves the cursor back to the start of the buffer.
func (c *Cursor) Reset() {
	c.off = 0
}

// Position captures the current offset.
func (c *Cursor) Position() Position {
	return Position{buf: c.buf, off: c.off}
}

// Peek returns the next byte without advancing.
func (c *Cursor) Peek() (byte, bool) {
	if !c.HasNext() {
		return 0, false
	}
	return c.buf[c.off], true
}

// PeekAt returns the byte n positions ahead of the current one (n=0 is the
// next byte) without advancing.
func (c *Cursor) PeekAt(n int) (byte, bool) {
	if n < 0 || n >= c.BytesRemaining() {
		return 0, false
	}
	return c.buf[c.off+n], true
}

// PeekUnchecked returns the next byte without advancing.
// The caller must ensure HasNext is true.
func (c *Cursor) PeekUnchecked() byte {
	return c.buf[c.off]
}

// Next returns the next byte and advances past it. Line terminators are
// returned as they appear in the buffer.
func (c *Cursor) Next() (byte, bool) {
	if !c.HasNext() {
		return 0, false
	}
	b := c.buf[c.off]
	c.off++
	return b, true
}

// NextUnchecked returns the next byte and advances past it.
// The caller must ensure HasNext is true.
func (c *Cursor) NextUnchecked() byte {
	b := c.buf[c.off]
	c.off++
	return b
}

// NextNormalized is like Next but maps CR, LF and CRLF to a single LF.
// A CRLF pair is consumed as one unit.
func (c *Cursor) NextNormalized() (byte, bool) {
	b, ok := c.Next()
	if !ok {
		return 0, false
	}
	if b != '\r' {
		return b, true
	}
	if next, ok := c.Peek(); ok && next == '\n' {
		c.off++
	}
	return '\n', true
}

// Advance moves forward one byte. It does nothing at end of input.
func (c *Cursor) Advance() {
	if c.HasNext() {
		c.off++
	}
}

// AdvanceUnchecked moves forward one byte.
// The caller must ensure HasNext is true.
func (c *Cursor) AdvanceUnchecked() {
	c.AdvanceNUnchecked(1)
}

// AdvanceNUnchecked moves forward n bytes.
// The caller must ensure BytesRemaining is at least n.
func (c *Cursor) AdvanceNUnchecked(n int) {
	if n < 0 || n > c.BytesRemaining() {
		panic("cursor: advance past end of buffer")
	}
	c.off += n
}

// SkipASCIIWhitespace advances while the next byte is ASCII whitespace:
// space, tab, LF, vertical tab, form feed or CR.
func (c *Cursor) SkipASCIIWhitespace() {
	for c.HasNext() && isASCIISpace(c.buf[c.off]) {
		c.off++
	}
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
