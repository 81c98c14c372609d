// Package store persists check results.
package store

import (
	"fmt"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// Store provides persistence for check results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends.
type Store interface {
	// AddBlob stores a blob record.
	AddBlob(id types.BlobID, size int64) error

	// BlobExists checks if a blob has already been checked.
	BlobExists(id types.BlobID) (bool, error)

	// AddProvenance associates provenance with a blob.
	AddProvenance(blobID types.BlobID, prov types.Provenance) error

	// GetProvenance retrieves every provenance recorded for a blob.
	GetProvenance(blobID types.BlobID) ([]types.Provenance, error)

	// AddDiagnostic stores a diagnostic (deduplicated by ID).
	AddDiagnostic(d *types.Diagnostic) error

	// GetAllDiagnostics retrieves all diagnostics ordered by path and offset.
	GetAllDiagnostics() ([]*types.Diagnostic, error)

	// Stats returns the number of stored blobs and diagnostics.
	Stats() (Stats, error)

	// Close releases the underlying resources.
	Close() error
}

// Stats summarizes a store's contents.
type Stats struct {
	Blobs       int
	Diagnostics int
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" selects the in-memory backend; any other
// path opens (or creates) a SQLite database.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
