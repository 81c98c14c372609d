package cursor

import (
	"encoding/binary"
	"math"
)

// Integer is the set of fixed-width integer types ReadInt and NextInt decode.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ReadInt decodes a T at the current offset using order, without advancing.
// It reports false if fewer than the size of T bytes remain.
func ReadInt[T Integer](c *Cursor, order binary.ByteOrder) (T, bool) {
	var v T
	n := binary.Size(v)
	if c.BytesRemaining() < n {
		return 0, false
	}
	b := c.buf[c.off : c.off+n]
	switch n {
	case 1:
		v = T(b[0])
	case 2:
		v = T(order.Uint16(b))
	case 4:
		v = T(order.Uint32(b))
	default:
		v = T(order.Uint64(b))
	}
	return v, true
}

// NextInt is like ReadInt but advances past the decoded bytes on success.
func NextInt[T Integer](c *Cursor, order binary.ByteOrder) (T, bool) {
	v, ok := ReadInt[T](c, order)
	if ok {
		c.AdvanceNUnchecked(binary.Size(v))
	}
	return v, ok
}

// ReadFloat32 decodes an IEEE 754 float32 without advancing.
func ReadFloat32(c *Cursor, order binary.ByteOrder) (float32, bool) {
	bits, ok := ReadInt[uint32](c, order)
	return math.Float32frombits(bits), ok
}

// NextFloat32 decodes an IEEE 754 float32 and advances past it.
func NextFloat32(c *Cursor, order binary.ByteOrder) (float32, bool) {
	bits, ok := NextInt[uint32](c, order)
	return math.Float32frombits(bits), ok
}

// ReadFloat64 decodes an IEEE 754 float64 without advancing.
func ReadFloat64(c *Cursor, order binary.ByteOrder) (float64, bool) {
	bits, ok := ReadInt[uint64](c, order)
	return math.Float64frombits(bits), ok
}

// NextFloat64 decodes an IEEE 754 float64 and advances past it.
func NextFloat64(c *Cursor, order binary.ByteOrder) (float64, bool) {
	bits, ok := NextInt[uint64](c, order)
	return math.Float64frombits(bits), ok
}
