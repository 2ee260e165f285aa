package chainfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.ArchiveStore = (*Archive)(nil)

// Archive is the file-backed chain archive. One JSON document per date
// under <root>/archive, hash-linked to its predecessor.
type Archive struct {
	dir string
}

// NewArchive creates (if needed) and opens the archive directory under
// the store root.
func NewArchive(root string) (*Archive, error) {
	dir := filepath.Join(root, "archive")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &Archive{dir: dir}, nil
}

func (a *Archive) path(date string) string {
	return filepath.Join(a.dir, date+".json")
}

// write persists a document atomically: encode to a temporary file in
// the same directory, then rename over the final path.
func (a *Archive) write(doc *domain.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc.Date, err)
	}

	tmp, err := os.CreateTemp(a.dir, doc.Date+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", doc.Date, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync %s: %w", doc.Date, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", doc.Date, err)
	}

	if err := os.Rename(tmpPath, a.path(doc.Date)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", doc.Date, err)
	}
	return nil
}

// Append archives a new document at the chain head.
func (a *Archive) Append(ctx context.Context, date, content string, metadata map[string]any) (*domain.Document, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	if _, err := os.Stat(a.path(date)); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateDate, date)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", date, err)
	}

	var prev *domain.Document
	head, err := a.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if head != nil {
		if head.Date > date {
			return nil, fmt.Errorf("%w: %s is before head %s", domain.ErrOutOfOrder, date, head.Date)
		}
		prev = head
	}

	prevHash := ""
	meta := map[string]any{
		"byte_size":    len(content),
		"total_tokens": domain.EstimateTokens(content),
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range metadata {
		meta[k] = v
	}

	doc := &domain.Document{
		Date:     date,
		Content:  content,
		Metadata: meta,
	}
	if prev != nil {
		prevHash = prev.Hash
		doc.Temporal.Prev = prev.Date
	}
	doc.PrevHash = prevHash
	doc.Hash = domain.ComputeHash(prevHash, content)

	if err := a.write(doc); err != nil {
		return nil, err
	}

	if prev != nil {
		prev.Temporal.Next = date
		if err := a.write(prev); err != nil {
			return nil, fmt.Errorf("update head pointer: %w", err)
		}
	}
	return doc, nil
}

// Get retrieves a document by date.
func (a *Archive) Get(_ context.Context, date string) (*domain.Document, error) {
	data, err := os.ReadFile(a.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, date)
		}
		return nil, fmt.Errorf("read %s: %w", date, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", date, err)
	}
	return doc, nil
}

// Latest returns the chain head, or (nil, nil) when the archive is empty.
func (a *Archive) Latest(ctx context.Context) (*domain.Document, error) {
	dates, err := a.Dates(ctx)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return a.Get(ctx, dates[len(dates)-1])
}

// Dates returns all archived dates in ascending order.
func (a *Archive) Dates(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if domain.ValidDate(date) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// All returns every archived document in ascending date order.
func (a *Archive) All(ctx context.Context) ([]*domain.Document, error) {
	dates, err := a.Dates(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]*domain.Document, 0, len(dates))
	for _, date := range dates {
		doc, err := a.Get(ctx, date)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Amend re-persists a document whose link fields changed. The chained
// fields are immutable; an attempt to alter them is refused.
func (a *Archive) Amend(ctx context.Context, doc *domain.Document) error {
	existing, err := a.Get(ctx, doc.Date)
	if err != nil {
		return err
	}
	if existing.Content != doc.Content || existing.Hash != doc.Hash || existing.PrevHash != doc.PrevHash {
		return fmt.Errorf("%w: %s", domain.ErrImmutableField, doc.Date)
	}
	return a.write(doc)
}

// Verify walks the chain forward from fromDate (genesis when empty),
// recomputing each hash and checking temporal pointer consistency.
// The hash of the document preceding fromDate is trusted as the anchor.
func (a *Archive) Verify(ctx context.Context, fromDate string) (*domain.VerifyReport, error) {
	dates, err := a.Dates(ctx)
	if err != nil {
		return nil, err
	}

	start := 0
	prevHash := ""
	prevDate := ""
	if fromDate != "" {
		start = sort.SearchStrings(dates, fromDate)
		if start == len(dates) || dates[start] != fromDate {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, fromDate)
		}
		if start > 0 {
			anchor, err := a.Get(ctx, dates[start-1])
			if err != nil {
				return nil, err
			}
			prevHash = anchor.Hash
			prevDate = anchor.Date
		}
	}

	report := &domain.VerifyReport{Valid: true}
	for i := start; i < len(dates); i++ {
		doc, err := a.Get(ctx, dates[i])
		if err != nil {
			return nil, err
		}
		report.Checked++

		next := ""
		if i+1 < len(dates) {
			next = dates[i+1]
		}
		switch {
		case doc.PrevHash != prevHash,
			doc.Hash != domain.ComputeHash(prevHash, doc.Content),
			doc.Temporal.Prev != prevDate,
			doc.Temporal.Next != next:
			report.Valid = false
			report.FirstBreak = doc.Date
			return report, nil
		}

		prevHash = doc.Hash
		prevDate = doc.Date
	}
	return report, nil
}
