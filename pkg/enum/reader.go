package enum

import (
	"context"
	"fmt"
	"io"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// ReaderEnumerator yields the entire content of a reader as one blob.
type ReaderEnumerator struct {
	name string
	r    io.Reader
}

// NewReaderEnumerator creates an enumerator over r; name is used as its provenance.
func NewReaderEnumerator(name string, r io.Reader) *ReaderEnumerator {
	return &ReaderEnumerator{name: name, r: r}
}

// Enumerate reads r to EOF and invokes callback once.
func (e *ReaderEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := io.ReadAll(e.r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.name, err)
	}
	return callback(content, types.ComputeBlobID(content), types.InlineProvenance{Name: e.name})
}
