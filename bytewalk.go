// Package bytewalk validates UTF-8 one character at a time and maps byte
// offsets to line and column positions.
//
// # Walking a buffer
//
// A Cursor reads a borrowed byte slice without copying it:
//
//	c := bytewalk.NewCursor(data)
//	for c.HasNext() {
//	    start := c.Position()
//	    if err := c.AdvanceChar(); err != nil {
//	        fmt.Printf("%v in %x\n", err, start.SliceTo(c.Position()))
//	    }
//	}
//
// # Checking content
//
// A Validator reports every malformed sequence with its location:
//
//	v := bytewalk.NewValidator(bytewalk.WithMaxDiagnostics(10))
//	res, err := v.CheckFile("notes.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range res.Diagnostics {
//	    fmt.Printf("%d:%d %s\n", d.Location.Source.Start.Line, d.Location.Source.Start.Column, d.Code)
//	}
//
// # Locating offsets
//
//	line, column := bytewalk.GetLinesAndColumns(source, 42)
package bytewalk

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/praetorian-inc/bytewalk/pkg/check"
	"github.com/praetorian-inc/bytewalk/pkg/cursor"
	"github.com/praetorian-inc/bytewalk/pkg/enum"
	"github.com/praetorian-inc/bytewalk/pkg/location"
	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Cursor is a forward-only reader over a borrowed byte slice.
	Cursor = cursor.Cursor

	// Position is a saved cursor offset.
	Position = cursor.Position

	// Error identifies a malformed UTF-8 sequence.
	Error = cursor.Error

	// Result summarizes one checked blob.
	Result = check.Result

	// Diagnostic is a single malformed sequence with its location.
	Diagnostic = types.Diagnostic

	// Location combines byte offsets and 1-based line:column positions.
	Location = types.Location
)

// Re-export the decode error variants.
const (
	EncounteredContinuationByte = cursor.EncounteredContinuationByte
	Missing2ndOf2               = cursor.Missing2ndOf2
	Invalid2ndOf2               = cursor.Invalid2ndOf2
	Missing2ndOf3               = cursor.Missing2ndOf3
	Invalid2ndOf3               = cursor.Invalid2ndOf3
	Missing3rdOf3               = cursor.Missing3rdOf3
	Invalid3rdOf3               = cursor.Invalid3rdOf3
	Missing2ndOf4               = cursor.Missing2ndOf4
	Invalid2ndOf4               = cursor.Invalid2ndOf4
	Missing3rdOf4               = cursor.Missing3rdOf4
	Invalid3rdOf4               = cursor.Invalid3rdOf4
	Missing4thOf4               = cursor.Missing4thOf4
	Invalid4thOf4               = cursor.Invalid4thOf4
)

// NewCursor returns a Cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return cursor.New(b)
}

// GetLinesAndColumns returns the zero-indexed line and column of byteOffset
// in source. It panics if byteOffset is outside [0, len(source)].
func GetLinesAndColumns(source string, byteOffset int) (line, column int) {
	return location.GetLinesAndColumns(source, byteOffset)
}

// Locate is GetLinesAndColumns for a byte slice.
func Locate(b []byte, offset int) (line, column int) {
	return location.Compute(b, offset)
}

// validatorConfig holds validator configuration.
type validatorConfig struct {
	maxDiagnostics int
	enum           enum.Config
}

// Option configures a Validator.
type Option func(*validatorConfig)

// WithMaxDiagnostics stops checking a blob after n diagnostics (0 = no limit).
func WithMaxDiagnostics(n int) Option {
	return func(c *validatorConfig) {
		c.maxDiagnostics = n
	}
}

// WithIncludeHidden makes CheckDir descend into hidden files and directories.
func WithIncludeHidden() Option {
	return func(c *validatorConfig) {
		c.enum.IncludeHidden = true
	}
}

// WithMaxFileSize makes CheckDir skip files larger than n bytes (0 = no limit).
func WithMaxFileSize(n int64) Option {
	return func(c *validatorConfig) {
		c.enum.MaxFileSize = n
	}
}

// WithExclude adds gitignore-style patterns that CheckDir skips.
func WithExclude(patterns ...string) Option {
	return func(c *validatorConfig) {
		c.enum.Exclude = append(c.enum.Exclude, patterns...)
	}
}

// Validator checks content for malformed UTF-8.
// It is safe for concurrent use.
type Validator struct {
	checker *check.Checker
	config  *validatorConfig
}

// NewValidator creates a Validator with the given options.
//
// By default there is no diagnostic limit, hidden files are skipped and
// file size is not limited.
func NewValidator(opts ...Option) *Validator {
	config := &validatorConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &Validator{
		checker: check.New(check.Options{MaxDiagnostics: config.maxDiagnostics}),
		config:  config,
	}
}

// CheckString checks content. Diagnostics carry an empty path.
func (v *Validator) CheckString(content string) *Result {
	return v.checker.Check([]byte(content), "")
}

// CheckBytes checks content. Diagnostics carry an empty path.
func (v *Validator) CheckBytes(content []byte) *Result {
	return v.checker.Check(content, "")
}

// CheckFile reads and checks a file.
func (v *Validator) CheckFile(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return v.checker.Check(content, path), nil
}

// CheckReader reads r to EOF and checks it; name is recorded as the path.
func (v *Validator) CheckReader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	var res *Result
	err := enum.NewReaderEnumerator(name, r).Enumerate(ctx, func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		res = v.checker.CheckBlob(content, blobID, prov.Path())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FileResult pairs a checked file with its result.
type FileResult struct {
	Path string
	*Result
}

// CheckDir checks every file under root, honoring root/.gitignore.
// Results are sorted by path.
func (v *Validator) CheckDir(ctx context.Context, root string) ([]FileResult, error) {
	cfg := v.config.enum
	cfg.Root = root
	cfg.Exclude = append([]string(nil), v.config.enum.Exclude...)

	var (
		mu      sync.Mutex
		results []FileResult
	)
	err := enum.NewFilesystemEnumerator(cfg).Enumerate(ctx, func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		res := v.checker.CheckBlob(content, blobID, prov.Path())
		mu.Lock()
		results = append(results, FileResult{Path: prov.Path(), Result: res})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// Valid reports whether content is entirely well-formed UTF-8 under the
// cursor's rules (CRLF is one character).
func Valid(content []byte) bool {
	c := cursor.New(content)
	for c.HasNext() {
		if c.AdvanceChar() != nil {
			return false
		}
	}
	return true
}
