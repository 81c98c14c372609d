package cursor

import (
	"testing"
	"unicode/utf8"
)

func FuzzAdvanceChar(f *testing.F) {
	f.Add([]byte("hello\r\nworld"))
	f.Add([]byte("aé€\U0001F600"))
	f.Add([]byte{0xF0, 0x9F, 0x98})
	f.Add([]byte{0x80, 0xC3, '\r', '\n', 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		c := New(data)
		valid := utf8.Valid(data)
		for c.HasNext() {
			before := c.BytesConsumed()
			err := c.AdvanceChar()
			if err != nil && valid {
				t.Fatalf("valid input %q rejected at %d: %v", data, before, err)
			}
			if c.BytesConsumed() <= before {
				t.Fatalf("no progress at offset %d", before)
			}
			if c.BytesConsumed()+c.BytesRemaining() != len(data) {
				t.Fatalf("consumed %d + remaining %d != %d", c.BytesConsumed(), c.BytesRemaining(), len(data))
			}
		}
		if c.BytesConsumed() != len(data) {
			t.Fatalf("consumed %d of %d bytes", c.BytesConsumed(), len(data))
		}
	})
}
