package domain

import "time"

// StagedEntry is a single raw conversation dump in the daily staging
// log. Entries are immutable once appended and ordered by append
// sequence within a day.
type StagedEntry struct {
	// ID uniquely identifies the entry within the store.
	ID string

	// Timestamp is when the entry was appended (UTC).
	Timestamp time.Time

	// Text is the raw conversation text.
	Text string

	// ByteSize is len(Text) in bytes.
	ByteSize int

	// EstTokens is a rough token estimate (~4 bytes per token).
	EstTokens int

	// Metadata is caller-supplied and opaque to the engine.
	Metadata map[string]any
}

// EstimateTokens returns a rough token count for text (~4 bytes per
// token, minimum 1).
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n < 1 {
		return 1
	}
	return n
}
