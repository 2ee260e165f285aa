package driven

import (
	"context"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// StagingLog persists the per-day append-only staging buffer, the only
// mutable pre-chain state in the store.
type StagingLog interface {
	// Append adds one entry to the date's staging buffer. Each append is
	// written as a complete, independently parseable record and flushed
	// before returning.
	Append(ctx context.Context, date, text string, metadata map[string]any) error

	// Read returns the date's entries in append order. A date with no
	// entries yields an empty slice, not an error.
	Read(ctx context.Context, date string) ([]domain.StagedEntry, error)

	// Clear removes the date's staging buffer. Invoked only by rollup
	// after a successful commit.
	Clear(ctx context.Context, date string) error

	// Dates returns the dates that currently have staged entries, in
	// ascending order.
	Dates(ctx context.Context) ([]string, error)
}
