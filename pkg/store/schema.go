package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"blobs", `
			CREATE TABLE IF NOT EXISTS blobs (
				id TEXT PRIMARY KEY NOT NULL,
				size INTEGER NOT NULL
			)`},
		{"provenance", `
			CREATE TABLE IF NOT EXISTS provenance (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				blob_id TEXT NOT NULL REFERENCES blobs(id),
				type TEXT NOT NULL,
				path TEXT NOT NULL,
				UNIQUE(blob_id, type, path)
			)`},
		{"diagnostics", `
			CREATE TABLE IF NOT EXISTS diagnostics (
				id TEXT PRIMARY KEY NOT NULL,
				blob_id TEXT NOT NULL REFERENCES blobs(id),
				code TEXT NOT NULL,
				message TEXT NOT NULL,
				path TEXT NOT NULL,
				offset_start INTEGER NOT NULL,
				offset_end INTEGER NOT NULL,
				start_line INTEGER NOT NULL,
				start_column INTEGER NOT NULL,
				end_line INTEGER NOT NULL,
				end_column INTEGER NOT NULL,
				bytes BLOB
			)`},
	}
	for _, tbl := range tables {
		if _, err := db.Exec(tbl.ddl); err != nil {
			return fmt.Errorf("creating %s table: %w", tbl.name, err)
		}
	}

	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_diagnostics_blob_id ON diagnostics(blob_id)`)
	if err != nil {
		return fmt.Errorf("creating diagnostics index: %w", err)
	}
	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d (want %d)", version, SchemaVersion)
	}
	return nil
}
