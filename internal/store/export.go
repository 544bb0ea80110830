package store

import (
	"context"

	"github.com/zeroclaw/memory/internal/model"
)

// ExportAll returns all entries, optionally filtered by category, ordered
// by key for stable output.
func (s *SQLiteStore) ExportAll(ctx context.Context, category *model.Category) ([]model.Entry, error) {
	query := `SELECT id, key, content, category, session_id, created_at FROM memories`
	var args []interface{}
	if category != nil {
		query += ` WHERE category = ?`
		args = append(args, category.String())
	}
	query += ` ORDER BY key`

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

// Import stores entries from an export. Later entries win on key collision.
func (s *SQLiteStore) Import(ctx context.Context, entries []model.Entry) (int, error) {
	imported := 0
	for _, e := range entries {
		if err := s.StoreWithSession(ctx, e.Key, e.Content, e.Category, e.SessionID); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
