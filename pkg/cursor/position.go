package cursor

// Position is an offset captured from a Cursor. It is only meaningful
// together with another Position taken from the same buffer.
type Position struct {
	buf []byte
	off int
}

// Offset returns the byte offset of p from the start of the buffer.
func (p Position) Offset() int {
	return p.off
}

// SliceTo returns the bytes between p and next without copying.
//
// It panics if next precedes p or if the two positions were captured from
// different buffers.
func (p Position) SliceTo(next Position) []byte {
	if !sameBuffer(p.buf, next.buf) {
		panic("cursor: positions belong to different buffers")
	}
	if next.off < p.off {
		panic("cursor: next position is before the receiver")
	}
	return p.buf[p.off:next.off:next.off]
}

func sameBuffer(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
