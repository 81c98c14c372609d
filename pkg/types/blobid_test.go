package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHex = "123456789abcdef0123456789abcdef012345678"

func TestComputeBlobID(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{
			name:    "empty content",
			content: []byte(""),
			// Git: echo -n "" | git hash-object --stdin
			expected: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391",
		},
		{
			name:     "hello world",
			content:  []byte("hello world"),
			expected: "95d09f2b10159347eece71399a7e2e907ea3df4f",
		},
		{
			name:    "test content",
			content: []byte("test content\n"),
			// Git: echo "test content" | git hash-object --stdin
			expected: "d670460b4b4aece5915caf5c68d12f560a9fe3e4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeBlobID(tt.content).Hex())
		})
	}
}

func TestParseBlobID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "valid hex", input: sampleHex},
		{name: "uppercase valid", input: strings.ToUpper(sampleHex)},
		{name: "too short", input: sampleHex[:39], expectErr: true},
		{name: "too long", input: sampleHex + "9", expectErr: true},
		{name: "invalid hex", input: "zzz" + sampleHex[3:], expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseBlobID(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(tt.input), id.Hex())
			assert.Equal(t, id.Hex(), id.String())
		})
	}
}

func TestBlobID_JSON(t *testing.T) {
	id, err := ParseBlobID(sampleHex)
	require.NoError(t, err)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+sampleHex+`"`, string(data))

	var decoded BlobID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	assert.Error(t, decoded.UnmarshalJSON([]byte(`123`)))
	assert.Error(t, decoded.UnmarshalJSON([]byte(`"invalid"`)))
}

func TestBlobID_SQL(t *testing.T) {
	id := ComputeBlobID([]byte("hello world"))

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), v)

	var fromString, fromBytes BlobID
	require.NoError(t, fromString.Scan(id.Hex()))
	require.NoError(t, fromBytes.Scan([]byte(id.Hex())))
	assert.Equal(t, id, fromString)
	assert.Equal(t, id, fromBytes)

	assert.Error(t, fromString.Scan(nil))
	assert.Error(t, fromString.Scan(42))
}
