// Package location maps byte offsets in a buffer to zero-indexed line and
// column numbers for diagnostics.
//
// Lines are separated by LF, CR or CRLF; a CRLF pair is one line break.
// Columns count characters rather than bytes: a valid multibyte UTF-8
// encoding counts once. Bytes that do not belong to a valid encoding count
// individually, so on input that is not UTF-8 the column degrades to a byte
// offset from the last line break. Grapheme clusters are not recognized;
// a base letter followed by a combining mark counts as two columns.
package location

import "fmt"

// GetLinesAndColumns returns the zero-indexed line and column of byteOffset in source.
//
// It panics if byteOffset is negative or greater than len(source).
func GetLinesAndColumns(source string, byteOffset int) (line, column int) {
	return compute(source, byteOffset)
}

// Compute returns the zero-indexed line and column of offset in b.
//
// The column is found by scanning backward from offset to the previous line
// break; the line is the number of line breaks up to and including that
// break. If offset falls inside a multibyte encoding, only the bytes before
// it are considered.
//
// It panics if offset is negative or greater than len(b).
func Compute(b []byte, offset int) (line, column int) {
	return compute(b, offset)
}

// text is either form of input the resolver reads; neither is copied.
type text interface {
	~string | ~[]byte
}

func compute[T text](b T, offset int) (line, column int) {
	if offset < 0 || offset > len(b) {
		panic(fmt.Sprintf("location: offset %d out of range [0, %d]", offset, len(b)))
	}

	index := offset
	for index > 0 {
		index--
		switch c := b[index]; {
		case c == '\n' || c == '\r':
			return countLineBreaks(b[:index+1]), column
		case isContinuation(c):
			index = sequenceStart(b, index)
		}
		column++
	}
	return 0, column
}

// CountLineBreaks counts LF, CR and CRLF line breaks in b. CRLF counts once.
func CountLineBreaks(b []byte) int {
	return countLineBreaks(b)
}

func countLineBreaks[T text](b T) int {
	count := 0
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			count++
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
		case '\n':
			count++
		}
	}
	return count
}

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}

// leadPatterns holds, for sequence length n, the mask and value a lead byte
// of that length must match.
var leadPatterns = [5]struct{ mask, value byte }{
	2: {0xE0, 0xC0},
	3: {0xF0, 0xE0},
	4: {0xF8, 0xF0},
}

// sequenceStart returns the index of the lead byte of the multibyte encoding
// whose last byte is the continuation byte at b[last]. If no valid lead byte
// precedes it, last is returned and the byte stands on its own.
func sequenceStart[T text](b T, last int) int {
	for n := 2; n <= 4; n++ {
		i := last - (n - 1)
		if i < 0 {
			return last
		}
		c := b[i]
		if p := leadPatterns[n]; c&p.mask == p.value {
			return i
		}
		if !isContinuation(c) {
			return last
		}
	}
	return last
}
