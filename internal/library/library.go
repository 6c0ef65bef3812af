// Package library is a SQLite catalogue of saved tournament designs.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/persist"
)

// ErrNotFound is returned when no design has the requested name.
var ErrNotFound = errors.New("design not found")

// Entry summarises one saved design.
type Entry struct {
	Name        string
	Blocks      int
	Connections int
	SavedAt     time.Time
}

// Library manages the SQLite connection and schema.
type Library struct {
	db  *sql.DB
	now func() time.Time
}

// Open initializes the catalogue at dbPath, creating it if needed.
func Open(dbPath string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create library dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	l := &Library{db: db, now: time.Now}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

func (l *Library) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS designs (
		name TEXT PRIMARY KEY,
		document JSON NOT NULL,
		blocks INTEGER NOT NULL,
		connections INTEGER NOT NULL,
		saved_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_designs_saved_at ON designs(saved_at);
	`
	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create designs table: %w", err)
	}
	return nil
}

// Save stores the current graph under name, replacing any earlier design
// with the same name. An empty name uses the graph's own name.
func (l *Library) Save(ctx context.Context, name string, s *graph.Store) error {
	if name == "" {
		name = s.Name()
	}
	now := l.now().UTC()
	doc := persist.Export(s, now)
	data, err := persist.Marshal(doc, persist.JSON)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO designs (name, document, blocks, connections, saved_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		document = excluded.document,
		blocks = excluded.blocks,
		connections = excluded.connections,
		saved_at = excluded.saved_at
	`
	if _, err := l.db.ExecContext(ctx, query, name, string(data), len(doc.Blocks), len(doc.Connections), now); err != nil {
		return fmt.Errorf("failed to save design %q: %w", name, err)
	}
	return nil
}

// Load replaces the contents of s with the design called name.
func (l *Library) Load(ctx context.Context, name string, s *graph.Store) (persist.Report, error) {
	var data string
	err := l.db.QueryRowContext(ctx, `SELECT document FROM designs WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return persist.Report{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return persist.Report{}, fmt.Errorf("failed to read design %q: %w", name, err)
	}
	return persist.Import(s, []byte(data), persist.JSON, name)
}

// List returns every saved design, most recent first.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
	SELECT name, blocks, connections, saved_at
	FROM designs
	ORDER BY saved_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Blocks, &e.Connections, &e.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the design called name.
func (l *Library) Delete(ctx context.Context, name string) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM designs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete design %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
