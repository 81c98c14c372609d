// Package enum discovers content to check.
package enum

import (
	"context"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// Callback receives the content of one blob, its ID and where it came from.
type Callback func(content []byte, blobID types.BlobID, prov types.Provenance) error

// Enumerator discovers content to check from a source.
type Enumerator interface {
	// Enumerate yields blobs from the source. The callback may be invoked
	// from several goroutines at once.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the file or directory to enumerate.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// IncludeBinary includes files that look binary (contain a NUL byte in the first 8KB).
	IncludeBinary bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Exclude holds gitignore-style patterns, applied in addition to Root/.gitignore.
	Exclude []string

	// Workers is the number of parallel file readers (0 = runtime.NumCPU()).
	Workers int
}
