package store

import (
	"database/sql"
	"fmt"

	"github.com/praetorian-inc/bytewalk/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite-backed store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddBlob stores a blob record.
func (s *SQLiteStore) AddBlob(id types.BlobID, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO blobs (id, size) VALUES (?, ?)", id, size)
	if err != nil {
		return fmt.Errorf("inserting blob: %w", err)
	}
	return nil
}

// BlobExists checks if a blob has already been checked.
func (s *SQLiteStore) BlobExists(id types.BlobID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM blobs WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking blob existence: %w", err)
	}
	return count > 0, nil
}

// AddProvenance associates provenance with a blob.
func (s *SQLiteStore) AddProvenance(blobID types.BlobID, prov types.Provenance) error {
	switch prov.(type) {
	case types.FileProvenance, types.InlineProvenance:
	default:
		return fmt.Errorf("unknown provenance type: %T", prov)
	}

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO provenance (blob_id, type, path)
		VALUES (?, ?, ?)
	`, blobID, prov.Kind(), prov.Path())
	if err != nil {
		return fmt.Errorf("inserting provenance: %w", err)
	}
	return nil
}

// GetProvenance retrieves every provenance recorded for a blob.
func (s *SQLiteStore) GetProvenance(blobID types.BlobID) ([]types.Provenance, error) {
	rows, err := s.db.Query("SELECT type, path FROM provenance WHERE blob_id = ? ORDER BY id", blobID)
	if err != nil {
		return nil, fmt.Errorf("querying provenance: %w", err)
	}
	defer rows.Close()

	provs := []types.Provenance{}
	for rows.Next() {
		var kind, path string
		if err := rows.Scan(&kind, &path); err != nil {
			return nil, fmt.Errorf("scanning provenance: %w", err)
		}
		switch kind {
		case "file":
			provs = append(provs, types.FileProvenance{FilePath: path})
		case "inline":
			provs = append(provs, types.InlineProvenance{Name: path})
		default:
			return nil, fmt.Errorf("unknown provenance type in database: %s", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provenance: %w", err)
	}
	return provs, nil
}

// AddDiagnostic stores a diagnostic (deduplicated by ID).
func (s *SQLiteStore) AddDiagnostic(d *types.Diagnostic) error {
	loc := d.Location
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO diagnostics (
			id, blob_id, code, message, path,
			offset_start, offset_end, start_line, start_column, end_line, end_column, bytes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.ID, d.BlobID, d.Code, d.Message, d.Path,
		loc.Offset.Start, loc.Offset.End,
		loc.Source.Start.Line, loc.Source.Start.Column,
		loc.Source.End.Line, loc.Source.End.Column,
		d.Bytes,
	)
	if err != nil {
		return fmt.Errorf("inserting diagnostic: %w", err)
	}
	return nil
}

const selectDiagnostics = `
	SELECT id, blob_id, code, message, path,
		offset_start, offset_end, start_line, start_column, end_line, end_column, bytes
	FROM diagnostics
`

// GetAllDiagnostics retrieves all diagnostics ordered by path and offset.
func (s *SQLiteStore) GetAllDiagnostics() ([]*types.Diagnostic, error) {
	rows, err := s.db.Query(selectDiagnostics + " ORDER BY path, offset_start")
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer rows.Close()

	diagnostics := []*types.Diagnostic{}
	for rows.Next() {
		var d types.Diagnostic
		loc := &d.Location
		err := rows.Scan(
			&d.ID, &d.BlobID, &d.Code, &d.Message, &d.Path,
			&loc.Offset.Start, &loc.Offset.End,
			&loc.Source.Start.Line, &loc.Source.Start.Column,
			&loc.Source.End.Line, &loc.Source.End.Column,
			&d.Bytes,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		diagnostics = append(diagnostics, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating diagnostics: %w", err)
	}
	return diagnostics, nil
}

// Stats returns the number of stored blobs and diagnostics.
func (s *SQLiteStore) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow("SELECT (SELECT COUNT(*) FROM blobs), (SELECT COUNT(*) FROM diagnostics)").Scan(&st.Blobs, &st.Diagnostics)
	if err != nil {
		return Stats{}, fmt.Errorf("counting records: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
