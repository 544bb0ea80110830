package lucid

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeroclaw/memory/internal/model"
)

const (
	contextOpen  = "<lucid-context>"
	contextClose = "</lucid-context>"
)

// parseContextBlock extracts ranked entries from lucid's free-form output.
// Everything outside the first marker pair is ignored; malformed lines
// inside the block are skipped, never an error.
func parseContextBlock(raw string) []model.Entry {
	now := time.Now().Format(time.RFC3339)

	var entries []model.Entry
	inBlock := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		// The first close marker ends the scan even if no block was opened.
		if line == contextClose {
			break
		}
		if !inBlock {
			if line == contextOpen {
				inBlock = true
			}
			continue
		}

		rest, ok := strings.CutPrefix(line, "- [")
		if !ok {
			continue
		}
		label, content, ok := strings.Cut(rest, "]")
		if !ok {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		// Presentation order is the only ranking signal lucid gives us;
		// decay it into a score, floored at 0.1.
		rank := len(entries)
		score := 1.0 - float64(rank)*0.05
		if score < 0.1 {
			score = 0.1
		}

		entries = append(entries, model.Entry{
			ID:        fmt.Sprintf("lucid:%d", rank),
			Key:       fmt.Sprintf("lucid_%d", rank),
			Content:   content,
			Category:  categoryFromLabel(label),
			Timestamp: now,
			Score:     &score,
		})
	}

	return entries
}

// categoryFromLabel maps a lucid label to a memory category. The mapping is
// intentionally lossy and not the inverse of lucidType.
func categoryFromLabel(label string) model.Category {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if strings.Contains(normalized, "visual") {
		return model.Custom("visual")
	}

	switch normalized {
	case "decision", "learning", "solution":
		return model.Core
	case "context", "conversation":
		return model.Conversation
	case "bug":
		return model.Daily
	default:
		return model.Custom(normalized)
	}
}

// lucidType maps a memory category to lucid's store type.
func lucidType(c model.Category) string {
	switch c {
	case model.Core:
		return "decision"
	case model.Daily:
		return "context"
	case model.Conversation:
		return "conversation"
	}
	return "learning" // Custom
}
