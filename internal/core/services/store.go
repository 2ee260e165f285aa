package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
	"github.com/comb-labs/comb-cli/internal/core/ports/driving"
	"github.com/comb-labs/comb-cli/internal/logger"
)

// Ensure StoreService implements the interface.
var _ driving.Store = (*StoreService)(nil)

// defaultRecallDepth is how many archived documents Recall includes
// when the caller does not say.
const defaultRecallDepth = 5

// StoreService orchestrates staging, rollup, honeycomb linking, search
// and chain verification. Single-process, single-writer: concurrent
// rollups against the same store must be serialized by the caller.
type StoreService struct {
	staging driven.StagingLog
	archive driven.ArchiveStore
	engine  driven.SearchEngine
	graph   *HoneycombGraph
	clock   driven.Clock
}

// NewStoreService wires the store over its driven ports and rebuilds
// the engine's corpus statistics from the archive, so they can never
// diverge from ground truth. A nil clock selects the system clock.
func NewStoreService(
	ctx context.Context,
	staging driven.StagingLog,
	archive driven.ArchiveStore,
	engine driven.SearchEngine,
	clock driven.Clock,
	cfg domain.Config,
) (*StoreService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}
	if clock == nil {
		clock = systemClock{}
	}

	s := &StoreService{
		staging: staging,
		archive: archive,
		engine:  engine,
		graph:   NewHoneycombGraph(archive, engine, cfg.Graph),
		clock:   clock,
	}

	docs, err := archive.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, doc := range docs {
		if err := engine.Index(ctx, doc.Date, doc.Content); err != nil {
			return nil, fmt.Errorf("index %s: %w", doc.Date, err)
		}
	}
	logger.Debug("store open: %d archived documents indexed", len(docs))

	return s, nil
}

// resolveDate applies the today default and validates the result.
func (s *StoreService) resolveDate(date string) (string, error) {
	if date == "" {
		date = s.clock.Today()
	}
	if !domain.ValidDate(date) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	return date, nil
}

// Stage appends a conversation dump to the date's staging buffer.
func (s *StoreService) Stage(ctx context.Context, text string, metadata map[string]any, date string) error {
	date, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	return s.staging.Append(ctx, date, text, metadata)
}

// Rollup promotes the date's staged entries into a single archived
// document. With nothing staged it is an idempotent no-op returning
// (nil, nil).
func (s *StoreService) Rollup(ctx context.Context, date string) (*domain.Document, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	entries, err := s.staging.Read(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read staging: %w", err)
	}
	if len(entries) == 0 {
		logger.Debug("rollup %s: nothing staged", date)
		return nil, nil
	}

	logger.Section("Rollup")
	logger.Info("rolling up %d entries for %s", len(entries), date)

	var content strings.Builder
	for _, entry := range entries {
		content.WriteString(entry.Text)
	}

	doc, err := s.archive.Append(ctx, date, content.String(), map[string]any{
		"entry_count": len(entries),
	})
	if err != nil {
		return nil, fmt.Errorf("archive append: %w", err)
	}

	if err := s.graph.Link(ctx, doc); err != nil {
		return nil, fmt.Errorf("honeycomb link: %w", err)
	}

	if err := s.engine.Index(ctx, doc.Date, doc.Content); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	if err := s.staging.Clear(ctx, date); err != nil {
		return nil, fmt.Errorf("clear staging: %w", err)
	}

	logger.Info("archived %s: %d semantic, %d social links", doc.Date, len(doc.Semantic), len(doc.Social.Links))
	return doc, nil
}

// Search ranks archived documents against the query and hydrates the
// hits from the archive. SimilarityScore is set on results only.
func (s *StoreService) Search(ctx context.Context, query string, k int) ([]*domain.Document, error) {
	hits, err := s.engine.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	docs := make([]*domain.Document, 0, len(hits))
	for _, hit := range hits {
		doc, err := s.archive.Get(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("search hit %s not in archive, skipping", hit.ID)
				continue
			}
			return nil, fmt.Errorf("hydrate %s: %w", hit.ID, err)
		}
		score := hit.Score
		doc.SimilarityScore = &score
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get retrieves an archived document by date.
func (s *StoreService) Get(ctx context.Context, date string) (*domain.Document, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	return s.archive.Get(ctx, date)
}

// Latest returns the chain head, or (nil, nil) for an empty archive.
func (s *StoreService) Latest(ctx context.Context) (*domain.Document, error) {
	return s.archive.Latest(ctx)
}

// Walk traverses the honeycomb graph from a starting date.
func (s *StoreService) Walk(ctx context.Context, start string, direction driving.WalkDirection, depth int) ([]*domain.Document, error) {
	if depth <= 0 {
		depth = 100
	}
	switch direction {
	case driving.WalkTemporal:
		return s.walkTemporal(ctx, start, depth)
	case driving.WalkSemantic:
		return s.walkSemantic(ctx, start, depth)
	default:
		return nil, fmt.Errorf("unknown walk direction %q", direction)
	}
}

func (s *StoreService) walkTemporal(ctx context.Context, start string, depth int) ([]*domain.Document, error) {
	var docs []*domain.Document
	date := start
	for date != "" && len(docs) < depth {
		doc, err := s.archive.Get(ctx, date)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		date = doc.Temporal.Next
	}
	return docs, nil
}

func (s *StoreService) walkSemantic(ctx context.Context, start string, depth int) ([]*domain.Document, error) {
	visited := map[string]bool{}
	queue := []string{start}
	var docs []*domain.Document
	for len(queue) > 0 && len(docs) < depth {
		date := queue[0]
		queue = queue[1:]
		if visited[date] {
			continue
		}
		visited[date] = true

		doc, err := s.archive.Get(ctx, date)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
		for _, n := range doc.Semantic {
			if !visited[n.Target] {
				queue = append(queue, n.Target)
			}
		}
	}
	return docs, nil
}

// Verify checks chain integrity from fromDate forward.
func (s *StoreService) Verify(ctx context.Context, fromDate string) (*domain.VerifyReport, error) {
	if fromDate != "" && !domain.ValidDate(fromDate) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, fromDate)
	}
	return s.archive.Verify(ctx, fromDate)
}

// Rebuild re-derives all honeycomb links and the search index from the
// archive's ground truth.
func (s *StoreService) Rebuild(ctx context.Context) error {
	return s.graph.Rebuild(ctx)
}

// Stats summarizes the store.
func (s *StoreService) Stats(ctx context.Context) (*driving.Stats, error) {
	docs, err := s.archive.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}

	stats := &driving.Stats{
		DocumentCount: len(docs),
		ChainLength:   len(docs),
	}
	for _, doc := range docs {
		stats.TotalBytes += metadataInt(doc.Metadata, "byte_size")
		stats.SemanticLinks += len(doc.Semantic)
		stats.SocialLinks += len(doc.Social.Links)
	}

	staged, err := s.staging.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("staging dates: %w", err)
	}
	stats.StagedDates = staged

	report, err := s.archive.Verify(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	stats.ChainValid = report.Valid

	return stats, nil
}

// Recall reconstructs recent operational context: staged-but-unrolled
// entries first (newest staging date first), then the k most recent
// archived documents.
func (s *StoreService) Recall(ctx context.Context, k int, includeStaged bool) (string, error) {
	if k <= 0 {
		k = defaultRecallDepth
	}

	var sections []string

	if includeStaged {
		stagedDates, err := s.staging.Dates(ctx)
		if err != nil {
			return "", fmt.Errorf("staging dates: %w", err)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(stagedDates)))
		for _, date := range stagedDates {
			entries, err := s.staging.Read(ctx, date)
			if err != nil {
				return "", fmt.Errorf("read staging %s: %w", date, err)
			}
			texts := make([]string, len(entries))
			for i, e := range entries {
				texts[i] = e.Text
			}
			sections = append(sections, fmt.Sprintf("[staged %s]\n%s", date, strings.Join(texts, "\n\n")))
		}
	}

	dates, err := s.archive.Dates(ctx)
	if err != nil {
		return "", fmt.Errorf("archive dates: %w", err)
	}
	if len(dates) > k {
		dates = dates[len(dates)-k:]
	}
	for i := len(dates) - 1; i >= 0; i-- {
		doc, err := s.archive.Get(ctx, dates[i])
		if err != nil {
			return "", fmt.Errorf("load %s: %w", dates[i], err)
		}
		sections = append(sections, fmt.Sprintf("[archive %s]\n%s", doc.Date, doc.Content))
	}

	if len(sections) == 0 {
		return "(empty memory)", nil
	}
	return strings.Join(sections, "\n\n"), nil
}

// Blink stages a context flush for a seamless agent restart and returns
// the recall text the agent will wake up to. The flush pattern: flush
// context, restart, recall, resume.
func (s *StoreService) Blink(ctx context.Context, text string, rollup bool) (string, error) {
	if err := s.Stage(ctx, text, map[string]any{"blink": true}, ""); err != nil {
		return "", fmt.Errorf("stage flush: %w", err)
	}
	if rollup {
		if _, err := s.Rollup(ctx, ""); err != nil {
			return "", fmt.Errorf("rollup flush: %w", err)
		}
	}
	return s.Recall(ctx, defaultRecallDepth, true)
}

// metadataInt reads an integer metadata value, tolerating the float64
// that JSON decoding produces.
func metadataInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
