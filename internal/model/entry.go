// Package model defines the core memory data types.
package model

// Entry represents a stored memory entry. Entries are immutable value
// objects; overwriting a key is modeled as replacement by the store.
type Entry struct {
	ID        string   `json:"id"`
	Key       string   `json:"key"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	Timestamp string   `json:"timestamp"` // RFC 3339, local time zone
	SessionID string   `json:"session_id,omitempty"`
	Score     *float64 `json:"score,omitempty"` // nil when no ranking signal exists
}
