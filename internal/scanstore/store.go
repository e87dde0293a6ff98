// Package scanstore persists the resolved roots of scans so repeated merges
// of the same scan translate findings against the same roots.
package scanstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scan-io-git/endpointmap/internal/findings"
)

// DefaultFileName is the database file created inside the store directory.
const DefaultFileName = "endpointmap.db"

// ErrScanNotFound is returned when no roots were stored for a scan.
var ErrScanNotFound = errors.New("scan not found")

// Record is the stored state of a scan.
type Record struct {
	ID           string
	Name         string
	Scanner      string
	FilePathRoot string
	URLPathRoot  string
	UpdatedAt    time.Time
}

// Store is a SQLite backed scan store.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the store inside dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	dbPath := filepath.Join(dir, DefaultFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}
	if err := s.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		scanner TEXT NOT NULL DEFAULT '',
		file_path_root TEXT NOT NULL DEFAULT '',
		url_path_root TEXT NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRoots stores the scan's current roots, overwriting any earlier values.
func (s *Store) SaveRoots(ctx context.Context, scan *findings.Scan) error {
	if scan == nil || scan.ID == "" {
		return fmt.Errorf("scan has no identifier")
	}

	query := `
	INSERT INTO scans (id, name, scanner, file_path_root, url_path_root, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		scanner = excluded.scanner,
		file_path_root = excluded.file_path_root,
		url_path_root = excluded.url_path_root,
		updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		scan.ID, scan.Name, scan.Scanner, scan.FilePathRoot, scan.URLPathRoot, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save roots for scan %q: %w", scan.ID, err)
	}
	return nil
}

// Load returns the stored record for id.
func (s *Store) Load(ctx context.Context, id string) (*Record, error) {
	query := `
	SELECT id, name, scanner, file_path_root, url_path_root, updated_at
	FROM scans WHERE id = ?
	`
	var r Record
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Name, &r.Scanner, &r.FilePathRoot, &r.URLPathRoot, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scan %q: %w", id, err)
	}
	return &r, nil
}

// Restore copies stored roots onto scan. It reports whether a record existed.
// Empty stored roots leave the scan's fields untouched.
func (s *Store) Restore(ctx context.Context, scan *findings.Scan) (bool, error) {
	r, err := s.Load(ctx, scan.ID)
	if errors.Is(err, ErrScanNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if r.FilePathRoot != "" {
		scan.SetFilePathRoot(r.FilePathRoot)
	}
	if r.URLPathRoot != "" {
		scan.SetURLPathRoot(r.URLPathRoot)
	}
	return true, nil
}
