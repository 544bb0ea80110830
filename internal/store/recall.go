package store

import (
	"context"

	"github.com/zeroclaw/memory/internal/model"
)

// Recall finds entries whose key, content, or indexed chunks contain the
// query substring, newest-first. A limit of zero or less returns nothing.
func (s *SQLiteStore) Recall(ctx context.Context, query string, limit int) ([]model.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT m.id, m.key, m.content, m.category, m.session_id, m.created_at
		FROM memories m
		LEFT JOIN chunks c ON c.memory_id = m.id
		WHERE m.key LIKE ? OR m.content LIKE ? OR c.text LIKE ?
		ORDER BY m.created_at DESC
		LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Entry
	seen := map[string]bool{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
