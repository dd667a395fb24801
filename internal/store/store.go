// Package store persists beams in .pond files. A .pond file is a SQLite
// database with one row per save; every row holds the YAML snapshot of the
// beam at that time, so earlier revisions stay available.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gopond/internal/beam"
)

// Extension is the file extension of gopond models
const Extension = ".pond"

// ErrNotFound is returned when a model file or revision does not exist
var ErrNotFound = errors.New("model not found")

// Revision describes one saved snapshot
type Revision struct {
	ID      int64
	SavedAt time.Time
	Name    string
	Note    string
}

// Path appends the .pond extension when p has none
func Path(p string) string {
	if filepath.Ext(p) == "" {
		return p + Extension
	}
	return p
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			saved_at TEXT NOT NULL,
			name TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			payload BLOB NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating revisions table: %w", err)
	}
	return db, nil
}

// openExisting opens a model file that must already exist
func openExisting(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	return open(path)
}

// Save appends a revision holding the current beam state and returns its id.
// The file is created when missing.
func Save(path string, b *beam.Beam, note string) (int64, error) {
	path = Path(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating directory: %w", err)
		}
	}

	payload, err := yaml.Marshal(b.Snapshot())
	if err != nil {
		return 0, fmt.Errorf("encoding beam: %w", err)
	}

	db, err := open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.Exec(`INSERT INTO revisions (saved_at, name, note, payload) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), b.Name(), strings.TrimSpace(note), payload)
	if err != nil {
		return 0, fmt.Errorf("saving revision: %w", err)
	}
	return res.LastInsertId()
}

// Load returns the beam of the newest revision
func Load(path string) (*beam.Beam, error) {
	return load(Path(path), `SELECT payload FROM revisions ORDER BY id DESC LIMIT 1`)
}

// LoadRevision returns the beam of one revision
func LoadRevision(path string, id int64) (*beam.Beam, error) {
	return load(Path(path), `SELECT payload FROM revisions WHERE id = ?`, id)
}

func load(path, query string, args ...any) (*beam.Beam, error) {
	db, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var payload []byte
	err = db.QueryRow(query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: no saved revision: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading revision: %w", err)
	}

	var snap beam.Snapshot
	if err := yaml.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding beam: %w", err)
	}
	b, err := beam.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("restoring beam: %w", err)
	}
	return b, nil
}

// Revisions lists the saved revisions, oldest first
func Revisions(path string) ([]Revision, error) {
	db, err := openExisting(Path(path))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, saved_at, name, note FROM revisions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		var savedAt string
		if err := rows.Scan(&r.ID, &savedAt, &r.Name, &r.Note); err != nil {
			return nil, fmt.Errorf("reading revision: %w", err)
		}
		r.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("revision %d has a bad timestamp: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
