// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists the conversion ledger: one record per converted
// note and format, keyed by source checksum, so repeat batch runs can skip
// work that is already done.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/noteconv/pkg/types"
)

const dbFile = "noteconv.db"

// Entry is one ledger record.
type Entry struct {
	NotePath    string    `yaml:"note_path"`
	Format      string    `yaml:"format"`
	Checksum    string    `yaml:"checksum"`
	OutputPath  string    `yaml:"output_path"`
	Warnings    int       `yaml:"warnings"`
	ConvertedAt time.Time `yaml:"converted_at"`
}

// Store manages the ledger SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at dir/noteconv.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		note_path TEXT NOT NULL,
		format TEXT NOT NULL,
		checksum TEXT NOT NULL,
		output_path TEXT NOT NULL,
		warnings INTEGER NOT NULL DEFAULT 0,
		converted_at TEXT NOT NULL,
		PRIMARY KEY (note_path, format)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record upserts one ledger entry.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(`INSERT INTO conversions
		(note_path, format, checksum, output_path, warnings, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(note_path, format) DO UPDATE SET
			checksum = excluded.checksum,
			output_path = excluded.output_path,
			warnings = excluded.warnings,
			converted_at = excluded.converted_at`,
		e.NotePath, e.Format, e.Checksum, e.OutputPath, e.Warnings,
		e.ConvertedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", e.NotePath, err)
	}
	return nil
}

// Lookup returns the ledger entry for a note and format, or nil when the
// note has not been converted to that format.
func (s *Store) Lookup(notePath string, format types.Format) (*Entry, error) {
	row := s.db.QueryRow(`SELECT note_path, format, checksum, output_path, warnings, converted_at
		FROM conversions WHERE note_path = ? AND format = ?`, notePath, string(format))
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", notePath, err)
	}
	return e, nil
}

// All returns every ledger entry ordered by note path.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT note_path, format, checksum, output_path, warnings, converted_at
		FROM conversions ORDER BY note_path, format`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ExportYAML writes the full ledger as YAML.
func (s *Store) ExportYAML(w io.Writer) error {
	entries, err := s.All()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var ts string
	if err := scan(&e.NotePath, &e.Format, &e.Checksum, &e.OutputPath, &e.Warnings, &ts); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err == nil {
		e.ConvertedAt = t
	}
	return &e, nil
}

// Checksum fingerprints a note's raw bytes for change detection.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
