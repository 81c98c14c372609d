package cursor

// AdvanceChar moves past one UTF-8 encoded character, validating each
// continuation byte. A CRLF pair counts as one character, as in NextNormalized.
//
// At end of input it returns nil without moving. On malformed input it
// returns an Error and leaves the cursor after the bytes it examined; the
// caller decides whether to resynchronize or stop.
func (c *Cursor) AdvanceChar() error {
	lead, ok := c.Next()
	if !ok {
		return nil
	}

	switch utf8Width[lead] {
	case 1:
		if lead == '\r' {
			if b, ok := c.Peek(); ok && b == '\n' {
				c.off++
			}
		}
		return nil
	case 2:
		return c.continuation(Missing2ndOf2, Invalid2ndOf2)
	case 3:
		if err := c.continuation(Missing2ndOf3, Invalid2ndOf3); err != nil {
			return err
		}
		return c.continuation(Missing3rdOf3, Invalid3rdOf3)
	case 4:
		if err := c.continuation(Missing2ndOf4, Invalid2ndOf4); err != nil {
			return err
		}
		if err := c.continuation(Missing3rdOf4, Invalid3rdOf4); err != nil {
			return err
		}
		return c.continuation(Missing4thOf4, Invalid4thOf4)
	default:
		return EncounteredContinuationByte
	}
}

// AdvanceCharUnchecked moves past one character using only the width of its
// lead byte. Continuation bytes are not validated and CRLF is not folded.
// A byte that cannot start a character is skipped on its own.
// The caller must ensure the whole character is present in the buffer.
func (c *Cursor) AdvanceCharUnchecked() {
	n := int(utf8Width[c.PeekUnchecked()])
	if n == 0 {
		n = 1
	}
	c.AdvanceNUnchecked(n)
}

// continuation consumes one byte that must have the form 0b10xxxxxx.
func (c *Cursor) continuation(missing, invalid Error) error {
	b, ok := c.NextNormalized()
	if !ok {
		return missing
	}
	if !isContinuation(b) {
		return invalid
	}
	return nil
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// CharWidth returns the length of the UTF-8 sequence that b declares when
// used as a lead byte, or 0 if b cannot start a sequence.
func CharWidth(b byte) int {
	return int(utf8Width[b])
}

// utf8Width maps a lead byte to the length of its sequence.
// Continuation bytes and 0xF8-0xFF map to 0.
var utf8Width = [256]uint8{
	// 0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x00-0x0F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x10-0x1F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x20-0x2F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x30-0x3F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x40-0x4F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x50-0x5F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x60-0x6F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x70-0x7F
	// 0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x80-0x8F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x90-0x9F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xA0-0xAF
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xB0-0xBF
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xC0-0xCF
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xD0-0xDF
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // 0xE0-0xEF
	4, 4, 4, 4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, // 0xF0-0xFF
}
