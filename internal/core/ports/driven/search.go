package driven

import "context"

// SearchEngine provides full-text ranking over archived documents.
// The default implementation is BM25-weighted cosine similarity; any
// alternative satisfying these three operations can replace it.
//
// Corpus statistics are derived state: they are rebuilt from the archive
// on store open, never persisted, so they cannot diverge from ground
// truth.
type SearchEngine interface {
	// Index adds or updates a document in the engine.
	Index(ctx context.Context, id, text string) error

	// Search ranks indexed documents against the query, descending by
	// score. k <= 0 means no limit.
	Search(ctx context.Context, query string, k int) ([]SearchHit, error)

	// Remove deletes a document from the engine.
	Remove(ctx context.Context, id string) error
}

// SearchHit is a single ranked result from the engine.
type SearchHit struct {
	// ID is the matched document identifier (an archive date).
	ID string

	// Score is the relevance score in [0, 1] for the built-in engine.
	Score float64
}
