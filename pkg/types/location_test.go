package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetSpan_HalfOpen(t *testing.T) {
	// [0, 5) includes bytes 0..4 but not byte 5
	span := OffsetSpan{Start: 0, End: 5}
	assert.Equal(t, int64(5), span.Len())
}
