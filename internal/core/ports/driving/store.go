package driving

import (
	"context"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// WalkDirection selects how Walk traverses the honeycomb graph.
type WalkDirection string

const (
	// WalkTemporal follows the prev/next chain forward.
	WalkTemporal WalkDirection = "temporal"

	// WalkSemantic follows semantic neighbours breadth-first.
	WalkSemantic WalkDirection = "semantic"
)

// Stats summarizes the state of a store.
type Stats struct {
	DocumentCount int      `json:"document_count"`
	TotalBytes    int      `json:"total_bytes"`
	ChainLength   int      `json:"chain_length"`
	SemanticLinks int      `json:"semantic_links"`
	SocialLinks   int      `json:"social_links"`
	StagedDates   []string `json:"staged_dates"`
	ChainValid    bool     `json:"chain_valid"`
}

// Store is the driving port of the chain archive engine.
type Store interface {
	// Stage appends a conversation dump to the date's staging buffer.
	// An empty date means today.
	Stage(ctx context.Context, text string, metadata map[string]any, date string) error

	// Rollup promotes the date's staged entries into a single archived
	// document, computes honeycomb links, indexes the document and
	// clears staging. An empty date means today. Returns (nil, nil)
	// without mutating anything when nothing is staged.
	Rollup(ctx context.Context, date string) (*domain.Document, error)

	// Search ranks archived documents against the query. Results carry
	// a transient SimilarityScore.
	Search(ctx context.Context, query string, k int) ([]*domain.Document, error)

	// Get retrieves an archived document by date.
	Get(ctx context.Context, date string) (*domain.Document, error)

	// Latest returns the chain head, or (nil, nil) for an empty archive.
	Latest(ctx context.Context) (*domain.Document, error)

	// Walk traverses the graph from a starting date, yielding at most
	// depth documents.
	Walk(ctx context.Context, start string, direction WalkDirection, depth int) ([]*domain.Document, error)

	// Verify checks chain integrity from fromDate forward (genesis when
	// empty).
	Verify(ctx context.Context, fromDate string) (*domain.VerifyReport, error)

	// Rebuild re-derives all honeycomb links and the search index for
	// the whole corpus. An explicit maintenance operation, not part of
	// normal rollup.
	Rebuild(ctx context.Context) error

	// Stats summarizes the store.
	Stats(ctx context.Context) (*Stats, error)

	// Recall reconstructs recent operational context: staged entries
	// first, then the k most recent archived documents.
	Recall(ctx context.Context, k int, includeStaged bool) (string, error)

	// Blink stages a context flush (tagged in entry metadata),
	// optionally rolls it up, and returns the recall text.
	Blink(ctx context.Context, text string, rollup bool) (string, error)
}
