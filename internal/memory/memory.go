// Package memory defines the contract shared by all memory backends.
package memory

import (
	"context"

	"github.com/zeroclaw/memory/internal/model"
)

// Memory is the capability set every backend provides. Implementations
// must be safe for concurrent use.
type Memory interface {
	// Name identifies the backend.
	Name() string

	// Store saves content under key, replacing any previous entry for key.
	Store(ctx context.Context, key, content string, category model.Category) error

	// Recall returns up to limit entries relevant to query.
	Recall(ctx context.Context, query string, limit int) ([]model.Entry, error)

	// Get returns the entry for key, or nil if none exists.
	Get(ctx context.Context, key string) (*model.Entry, error)

	// List returns entries, optionally filtered by category.
	List(ctx context.Context, category *model.Category) ([]model.Entry, error)

	// Forget removes the entry for key. Returns true if one existed.
	Forget(ctx context.Context, key string) (bool, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// HealthCheck reports whether the backend is usable.
	HealthCheck(ctx context.Context) bool
}
