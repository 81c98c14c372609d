package store

import (
	"sort"
	"sync"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu          sync.RWMutex
	blobs       map[types.BlobID]int64
	provenance  map[types.BlobID][]types.Provenance
	diagnostics map[string]*types.Diagnostic // keyed by Diagnostic.ID
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		blobs:       make(map[types.BlobID]int64),
		provenance:  make(map[types.BlobID][]types.Provenance),
		diagnostics: make(map[string]*types.Diagnostic),
	}
}

// AddBlob stores a blob record. Adding an existing blob is a no-op.
func (m *MemoryStore) AddBlob(id types.BlobID, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.blobs[id]; !exists {
		m.blobs[id] = size
	}
	return nil
}

// BlobExists checks if a blob has already been checked.
func (m *MemoryStore) BlobExists(id types.BlobID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.blobs[id]
	return exists, nil
}

// AddProvenance associates provenance with a blob.
func (m *MemoryStore) AddProvenance(blobID types.BlobID, prov types.Provenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.provenance[blobID] {
		if p.Kind() == prov.Kind() && p.Path() == prov.Path() {
			return nil
		}
	}
	m.provenance[blobID] = append(m.provenance[blobID], prov)
	return nil
}

// GetProvenance retrieves every provenance recorded for a blob.
func (m *MemoryStore) GetProvenance(blobID types.BlobID) ([]types.Provenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]types.Provenance, len(m.provenance[blobID]))
	copy(result, m.provenance[blobID])
	return result, nil
}

// AddDiagnostic stores a diagnostic (deduplicated by ID).
func (m *MemoryStore) AddDiagnostic(d *types.Diagnostic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.diagnostics[d.ID]; !exists {
		m.diagnostics[d.ID] = d
	}
	return nil
}

// GetAllDiagnostics retrieves all diagnostics ordered by path and offset.
func (m *MemoryStore) GetAllDiagnostics() ([]*types.Diagnostic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Diagnostic, 0, len(m.diagnostics))
	for _, d := range m.diagnostics {
		result = append(result, d)
	}
	sortDiagnostics(result)
	return result, nil
}

// Stats returns the number of stored blobs and diagnostics.
func (m *MemoryStore) Stats() (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{Blobs: len(m.blobs), Diagnostics: len(m.diagnostics)}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func sortDiagnostics(ds []*types.Diagnostic) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Path != ds[j].Path {
			return ds[i].Path < ds[j].Path
		}
		return ds[i].Location.Offset.Start < ds[j].Location.Offset.Start
	})
}
