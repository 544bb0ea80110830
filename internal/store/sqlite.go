// Package store provides the SQLite-backed local memory store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/zeroclaw/memory/internal/chunker"
	"github.com/zeroclaw/memory/internal/model"
)

// SQLiteStore implements memory.Memory on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// New opens or creates a SQLite database at the given path.
func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id         TEXT PRIMARY KEY,
		key        TEXT NOT NULL UNIQUE,
		content    TEXT NOT NULL,
		category   TEXT NOT NULL,
		session_id TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_category ON memories(category);
	CREATE INDEX IF NOT EXISTS idx_memories_created ON memories(created_at DESC);

	CREATE TABLE IF NOT EXISTS chunks (
		id        TEXT PRIMARY KEY,
		memory_id TEXT NOT NULL REFERENCES memories(id) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		text      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_memory ON chunks(memory_id);

	CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
		text,
		content=chunks,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers keep the index in sync with the chunks table
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS chunks_ai AFTER INSERT ON chunks BEGIN
		INSERT INTO chunks_fts(rowid, text) VALUES (new.rowid, new.text);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS chunks_ad AFTER DELETE ON chunks BEGIN
		INSERT INTO chunks_fts(chunks_fts, rowid, text) VALUES('delete', old.rowid, old.text);
	END`)

	return nil
}

func (s *SQLiteStore) newID() string {
	return ulid.Make().String()
}

// Name identifies the backend.
func (s *SQLiteStore) Name() string {
	return "sqlite"
}

// Store saves content under key. An existing entry for the same key is
// replaced wholesale, chunks included.
func (s *SQLiteStore) Store(ctx context.Context, key, content string, category model.Category) error {
	return s.StoreWithSession(ctx, key, content, category, "")
}

// StoreWithSession is Store with an optional caller-supplied correlation ID.
func (s *SQLiteStore) StoreWithSession(ctx context.Context, key, content string, category model.Category, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prevID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM memories WHERE key = ?`, key).Scan(&prevID)
	if err == nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, prevID); err != nil {
			return fmt.Errorf("replace memory: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return err
	}

	id := s.newID()
	var session *string
	if sessionID != "" {
		session = &sessionID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memories (id, key, content, category, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, key, content, category.String(), session, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert memory: %w", err)
	}

	for i, text := range chunker.Chunk(content, chunker.DefaultOptions()) {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chunks (id, memory_id, seq, text) VALUES (?, ?, ?, ?)`,
			s.newID(), id, i, text)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
	}

	return tx.Commit()
}

// Get returns the entry for key, or nil if none exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, key, content, category, session_id, created_at
		 FROM memories WHERE key = ?`, key)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns entries newest-first, optionally filtered by category.
func (s *SQLiteStore) List(ctx context.Context, category *model.Category) ([]model.Entry, error) {
	query := `SELECT id, key, content, category, session_id, created_at
	          FROM memories`
	var args []interface{}
	if category != nil {
		query += ` WHERE category = ?`
		args = append(args, category.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget removes the entry for key. Returns true if one existed.
func (s *SQLiteStore) Forget(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE key = ?`, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&n)
	return n, err
}

// HealthCheck reports whether the database answers queries.
func (s *SQLiteStore) HealthCheck(ctx context.Context) bool {
	var one int
	return s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one) == nil
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var category string
	var session sql.NullString

	err := row.Scan(&e.ID, &e.Key, &e.Content, &category, &session, &e.Timestamp)
	if err != nil {
		return e, err
	}

	e.Category = model.ParseCategory(category)
	if session.Valid {
		e.SessionID = session.String
	}
	return e, nil
}
