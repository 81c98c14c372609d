package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyBuffer(t *testing.T) {
	c := New(nil)

	assert.False(t, c.HasNext())
	assert.Equal(t, 0, c.BytesConsumed())
	assert.Equal(t, 0, c.BytesRemaining())

	_, ok := c.Peek()
	assert.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok)
	_, ok = c.NextNormalized()
	assert.False(t, ok)

	// Saturates at end
	c.Advance()
	assert.Equal(t, 0, c.BytesConsumed())
	require.NoError(t, c.AdvanceChar())
}

func TestPeekAndNext(t *testing.T) {
	c := New([]byte("abc"))

	b, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, 0, c.BytesConsumed(), "Peek must not advance")

	b, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, 1, c.BytesConsumed())

	assert.Equal(t, byte('b'), c.NextUnchecked())
	assert.Equal(t, byte('c'), c.PeekUnchecked())
	c.AdvanceUnchecked()

	_, ok = c.Next()
	assert.False(t, ok)
	assert.Equal(t, 3, c.BytesConsumed())
}

func TestPeekAt(t *testing.T) {
	c := New([]byte("xyz"))
	c.Advance()

	tests := []struct {
		n      int
		want   byte
		wantOK bool
	}{
		{n: 0, want: 'y', wantOK: true},
		{n: 1, want: 'z', wantOK: true},
		{n: 2, wantOK: false},
		{n: 100, wantOK: false},
		{n: -1, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := c.PeekAt(tt.n)
		assert.Equal(t, tt.wantOK, ok, "PeekAt(%d)", tt.n)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "PeekAt(%d)", tt.n)
		}
	}
	assert.Equal(t, 1, c.BytesConsumed(), "PeekAt must not advance")
}

func TestNextNormalized(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         byte
		wantConsumed int
	}{
		{name: "CRLF folds to one LF", input: "\r\n", want: '\n', wantConsumed: 2},
		{name: "lone CR becomes LF", input: "\r", want: '\n', wantConsumed: 1},
		{name: "CR before other byte", input: "\rx", want: '\n', wantConsumed: 1},
		{name: "lone LF", input: "\n", want: '\n', wantConsumed: 1},
		{name: "LF CR is two breaks", input: "\n\r", want: '\n', wantConsumed: 1},
		{name: "plain byte", input: "q", want: 'q', wantConsumed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]byte(tt.input))
			got, ok := c.NextNormalized()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantConsumed, c.BytesConsumed())
		})
	}
}

func TestNextNormalized_MixedTerminators(t *testing.T) {
	c := New([]byte("a\r\nb\rc\n"))

	var out []byte
	for {
		b, ok := c.NextNormalized()
		if !ok {
			break
		}
		out = append(out, b)
	}
	assert.Equal(t, "a\nb\nc\n", string(out))
}

func TestSkipASCIIWhitespace(t *testing.T) {
	c := New([]byte("a\n\t\x0C\r"))

	c.SkipASCIIWhitespace()
	assert.Equal(t, 0, c.BytesConsumed(), "non-whitespace first byte must stop immediately")

	b, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)

	c.SkipASCIIWhitespace()
	assert.False(t, c.HasNext())
	assert.Equal(t, 5, c.BytesConsumed())
}

func TestSkipASCIIWhitespace_AllKinds(t *testing.T) {
	c := New([]byte(" \t\n\v\f\rx "))
	c.SkipASCIIWhitespace()

	b, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('x'), b)
}

func TestBytesConsumedPlusRemaining(t *testing.T) {
	input := []byte("héllo\r\nwörld \U0001F600")
	c := New(input)

	for c.HasNext() {
		assert.Equal(t, len(input), c.BytesConsumed()+c.BytesRemaining())
		require.NoError(t, c.AdvanceChar())
	}
	assert.Equal(t, len(input), c.BytesConsumed()+c.BytesRemaining())
	assert.Equal(t, 0, c.BytesRemaining())
}

func TestBytesAndReset(t *testing.T) {
	c := New([]byte("abcd"))
	c.Advance()
	c.Advance()

	assert.Equal(t, []byte("cd"), c.Bytes())
	assert.Equal(t, 4, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.BytesConsumed())
	assert.Equal(t, []byte("abcd"), c.Bytes())
}

func TestAdvanceNUnchecked_PanicsPastEnd(t *testing.T) {
	c := New([]byte("ab"))
	assert.Panics(t, func() { c.AdvanceNUnchecked(3) })
	assert.Equal(t, 0, c.BytesConsumed())
}

func TestZeroValueCursor(t *testing.T) {
	var c Cursor
	assert.False(t, c.HasNext())
	c.SkipASCIIWhitespace()
	assert.Equal(t, 0, c.BytesRemaining())
}
