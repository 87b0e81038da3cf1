// Package feed stores the activity feed shown by the demo tab view.
package feed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    actor TEXT NOT NULL,
    verb TEXT NOT NULL,
    object TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at DESC, id DESC);
`

// Activity is one feed entry
type Activity struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor"`
	Verb      string    `json:"verb"`
	Object    string    `json:"object,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// String renders the activity as a sentence
func (a Activity) String() string {
	if a.Object == "" {
		return a.Actor + " " + a.Verb
	}
	return a.Actor + " " + a.Verb + " " + a.Object
}

// Store wraps the feed database
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the feed database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create feed dir: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open feed database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Add inserts an activity and sets its ID. A zero CreatedAt means now.
func (s *Store) Add(ctx context.Context, a *Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	// Unix seconds: the sqlite driver would otherwise store time.Time via
	// String(), which does not sort.
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO activity (actor, verb, object, created_at) VALUES (?, ?, ?, ?)`,
		a.Actor, a.Verb, a.Object, a.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("activity id: %w", err)
	}
	a.ID = id
	return nil
}

// List returns activity newest first
func (s *Store) List(ctx context.Context, offset, limit int) ([]Activity, error) {
	return s.list(ctx, "", offset, limit)
}

// ListByVerb returns activity with the given verb, newest first
func (s *Store) ListByVerb(ctx context.Context, verb string, offset, limit int) ([]Activity, error) {
	return s.list(ctx, verb, offset, limit)
}

func (s *Store) list(ctx context.Context, verb string, offset, limit int) ([]Activity, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, actor, verb, object, created_at
		FROM activity
		WHERE ? = '' OR verb = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, verb, verb, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var created int64
		if err := rows.Scan(&a.ID, &a.Actor, &a.Verb, &a.Object, &created); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.CreatedAt = time.Unix(created, 0)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Count returns the number of activities
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count activity: %w", err)
	}
	return n, nil
}

// Actors returns the distinct actors, alphabetically
func (s *Store) Actors(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT DISTINCT actor FROM activity ORDER BY actor`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
