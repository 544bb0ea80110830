package lucid

import (
	"strings"

	"github.com/zeroclaw/memory/internal/model"
)

// mergeResults combines primary (local) and secondary (remote) entries into
// one capped list. Identity is case-insensitive key plus content; id and
// score are not part of it. First occurrence wins, so local entries always
// outrank remote duplicates.
func mergeResults(primary, secondary []model.Entry, limit int) []model.Entry {
	if limit <= 0 {
		return nil
	}

	merged := make([]model.Entry, 0, limit)
	seen := make(map[string]struct{})

	for _, list := range [2][]model.Entry{primary, secondary} {
		for _, e := range list {
			sig := strings.ToLower(e.Key) + "\x00" + strings.ToLower(e.Content)
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}
			merged = append(merged, e)
			if len(merged) >= limit {
				return merged
			}
		}
	}

	return merged
}
