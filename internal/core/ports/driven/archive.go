package driven

import (
	"context"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// ArchiveStore persists the hash-chained document archive. One document
// per calendar date, dates unique and totally ordered.
type ArchiveStore interface {
	// Append archives a new document at the chain head. It computes the
	// prev_hash from the current head (empty for an empty archive),
	// computes the chain hash, persists the document, and amends the
	// previous head's temporal next pointer. Returns
	// domain.ErrDuplicateDate if the date is already archived and
	// domain.ErrOutOfOrder if the date precedes the head.
	Append(ctx context.Context, date, content string, metadata map[string]any) (*domain.Document, error)

	// Get retrieves a document by date. Returns domain.ErrNotFound for
	// unknown dates.
	Get(ctx context.Context, date string) (*domain.Document, error)

	// Latest returns the document with the most recent date, or
	// (nil, nil) when the archive is empty.
	Latest(ctx context.Context) (*domain.Document, error)

	// Dates returns all archived dates in ascending order.
	Dates(ctx context.Context) ([]string, error)

	// All returns every archived document in ascending date order.
	All(ctx context.Context) ([]*domain.Document, error)

	// Amend re-persists a document whose link fields changed. Content,
	// hash and prev_hash are immutable: changing them returns
	// domain.ErrImmutableField. The replacement is atomic so a crash
	// mid-write never leaves a half-written document.
	Amend(ctx context.Context, doc *domain.Document) error

	// Verify walks the chain forward from fromDate (genesis when empty),
	// recomputing each hash from stored content and the previous
	// document's hash and checking temporal pointer consistency. The
	// report identifies the first date of divergence. Verification never
	// repairs the archive.
	Verify(ctx context.Context, fromDate string) (*domain.VerifyReport, error)
}
