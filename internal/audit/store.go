// Package audit persists reveal sites so downgrades can be reviewed
// after the fact. The store sits outside the checker: the core analysis
// is pure and does no I/O, the CLI writes sites here after a passing
// check.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/procheck/internal/checker"
)

const schema = `
CREATE TABLE IF NOT EXISTS reveal_sites (
	id          TEXT PRIMARY KEY,
	file        TEXT NOT NULL,
	line        INTEGER NOT NULL,
	column      INTEGER NOT NULL,
	source_type TEXT NOT NULL,
	result_type TEXT NOT NULL,
	checked_at  TEXT NOT NULL
);
`

// Record is one persisted reveal site.
type Record struct {
	ID        string
	File      string
	Line      int
	Column    int
	Source    string
	Result    string
	CheckedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the audit database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the reveal sites of one check run. Sites from earlier
// runs of the same file are replaced, so the table always reflects the
// latest verdict per file.
func (s *Store) Record(file string, sites []checker.RevealSite) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record reveal sites: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reveal_sites WHERE file = ?`, file); err != nil {
		return fmt.Errorf("record reveal sites: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, site := range sites {
		_, err := tx.Exec(
			`INSERT INTO reveal_sites (id, file, line, column, source_type, result_type, checked_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			site.ID, site.File, site.Line, site.Column, site.Source, site.Result, now,
		)
		if err != nil {
			return fmt.Errorf("record reveal sites: %w", err)
		}
	}
	return tx.Commit()
}

// List returns all persisted reveal sites ordered by file and position.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, file, line, column, source_type, result_type, checked_at
		 FROM reveal_sites ORDER BY file, line, column`)
	if err != nil {
		return nil, fmt.Errorf("list reveal sites: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var checkedAt string
		if err := rows.Scan(&rec.ID, &rec.File, &rec.Line, &rec.Column, &rec.Source, &rec.Result, &checkedAt); err != nil {
			return nil, fmt.Errorf("list reveal sites: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, checkedAt); err == nil {
			rec.CheckedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
