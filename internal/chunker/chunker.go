// Package chunker splits memory content into chunks for search indexing.
package chunker

import "strings"

const (
	DefaultTargetSize = 400
	DefaultMaxSize    = 600
)

// Options configures chunking behavior.
type Options struct {
	TargetSize int
	MaxSize    int
}

// DefaultOptions returns default chunking options.
func DefaultOptions() Options {
	return Options{TargetSize: DefaultTargetSize, MaxSize: DefaultMaxSize}
}

// Chunk splits text into indexable chunks. Short content (<= MaxSize)
// returns a single chunk.
func Chunk(text string, opts Options) []string {
	if opts.TargetSize == 0 {
		opts = DefaultOptions()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= opts.MaxSize {
		return []string{text}
	}

	var chunks []string
	for _, b := range splitBlocks(text) {
		if len(chunks) > 0 && len(chunks[len(chunks)-1])+len(b)+2 <= opts.TargetSize {
			chunks[len(chunks)-1] += "\n\n" + b
			continue
		}
		if len(b) > opts.MaxSize {
			chunks = append(chunks, hardSplit(b, opts.TargetSize)...)
			continue
		}
		chunks = append(chunks, b)
	}
	return chunks
}

// splitBlocks breaks text on heading lines and blank-line boundaries.
func splitBlocks(text string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if joined := strings.TrimSpace(strings.Join(current, "\n")); joined != "" {
			blocks = append(blocks, joined)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "#") && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// hardSplit breaks an oversized block on line boundaries.
func hardSplit(text string, target int) []string {
	var chunks []string
	var current []string
	size := 0

	for _, line := range strings.Split(text, "\n") {
		if size+len(line) > target && len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(strings.Join(current, "\n")))
			current = nil
			size = 0
		}
		current = append(current, line)
		size += len(line) + 1
	}
	if joined := strings.TrimSpace(strings.Join(current, "\n")); joined != "" {
		chunks = append(chunks, joined)
	}

	return chunks
}
