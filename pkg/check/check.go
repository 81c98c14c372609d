// Package check validates that content is well-formed UTF-8 and reports the
// location of every malformed sequence.
package check

import (
	"github.com/praetorian-inc/bytewalk/pkg/cursor"
	"github.com/praetorian-inc/bytewalk/pkg/location"
	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// Options controls a Checker.
type Options struct {
	// MaxDiagnostics stops checking a blob after this many diagnostics (0 = no limit).
	MaxDiagnostics int
}

// DefaultOptions returns the default options for the checker.
func DefaultOptions() Options {
	return Options{MaxDiagnostics: 0}
}

// Result summarizes one checked blob.
type Result struct {
	BlobID      types.BlobID
	Bytes       int  // total size of the blob
	Chars       int  // characters advanced without error (CRLF counts once)
	Lines       int  // number of lines (0 for empty content)
	Truncated   bool // MaxDiagnostics was reached before the end
	Diagnostics []*types.Diagnostic
}

// Valid reports whether no malformed sequences were found.
func (r *Result) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Checker walks content one character at a time.
// A Checker holds no per-blob state and is safe for concurrent use.
type Checker struct {
	opts Options
}

// New creates a checker.
func New(opts Options) *Checker {
	return &Checker{opts: opts}
}

// Check validates content. path is recorded on each diagnostic.
func (c *Checker) Check(content []byte, path string) *Result {
	return c.CheckBlob(content, types.ComputeBlobID(content), path)
}

// CheckBlob is like Check for callers that already hold the blob ID of content.
func (c *Checker) CheckBlob(content []byte, id types.BlobID, path string) *Result {
	res := &Result{
		BlobID: id,
		Bytes:  len(content),
	}
	if len(content) > 0 {
		res.Lines = location.CountLineBreaks(content) + 1
	}

	var pos tracker
	cur := cursor.New(content)
	for cur.HasNext() {
		start := cur.Position()
		lead := cur.PeekUnchecked()
		err := cur.AdvanceChar()
		if err == nil {
			pos.char(lead)
			res.Chars++
			continue
		}

		// AdvanceChar only returns cursor.Error values.
		code := err.(cursor.Error)
		end := cur.Position()
		bad := start.SliceTo(end)
		from := pos.point()
		pos.malformed(bad)

		d := &types.Diagnostic{
			BlobID:  res.BlobID,
			Code:    code.String(),
			Message: code.Error(),
			Path:    path,
			Location: types.Location{
				Offset: types.OffsetSpan{Start: int64(start.Offset()), End: int64(end.Offset())},
				Source: types.SourceSpan{Start: from, End: pos.point()},
			},
			Bytes: bad,
		}
		d.ID = d.ComputeID()
		res.Diagnostics = append(res.Diagnostics, d)

		if c.opts.MaxDiagnostics > 0 && len(res.Diagnostics) >= c.opts.MaxDiagnostics {
			res.Truncated = cur.HasNext()
			break
		}
	}

	return res
}

// tracker follows the zero-based line and column of the cursor as it moves
// forward, so locating a diagnostic never rescans the content before it.
// A well-formed character takes one column and each byte of a malformed
// sequence takes one, as in location.Compute.
type tracker struct {
	line, column int
}

// point returns the current position, one-based.
func (t *tracker) point() types.SourcePoint {
	return types.SourcePoint{Line: t.line + 1, Column: t.column + 1}
}

// char records a well-formed character starting with lead. AdvanceChar has
// already folded a CRLF pair into one character.
func (t *tracker) char(lead byte) {
	if lead == '\n' || lead == '\r' {
		t.newline()
		return
	}
	t.column++
}

// malformed records the bytes of a malformed sequence. A continuation read
// may have consumed a CR, LF or CRLF, which still ends the line.
func (t *tracker) malformed(b []byte) {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			t.newline()
		case '\n':
			t.newline()
		default:
			t.column++
		}
	}
}

func (t *tracker) newline() {
	t.line++
	t.column = 0
}
