package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
	"github.com/comb-labs/comb-cli/internal/logger"
)

// HoneycombGraph computes and maintains the three link structures over
// the chain archive:
//
//   - Temporal links are fixed up by the archive on append.
//   - Semantic links come from the search engine's ranking function,
//     top-k above a threshold, attached symmetrically on both sides.
//   - Social links are derived only between semantic-neighbour pairs.
//
// Link computation is incremental: one new document against the existing
// corpus, at rollup time. Rebuild re-derives everything from scratch.
type HoneycombGraph struct {
	archive driven.ArchiveStore
	engine  driven.SearchEngine
	cfg     domain.GraphConfig
}

// NewHoneycombGraph creates a graph manager over the given archive and
// ranking engine.
func NewHoneycombGraph(archive driven.ArchiveStore, engine driven.SearchEngine, cfg domain.GraphConfig) *HoneycombGraph {
	return &HoneycombGraph{archive: archive, engine: engine, cfg: cfg}
}

// Link computes semantic and social links for a freshly archived
// document and persists every amended prior document plus the document
// itself. The engine must not yet contain doc: ranking runs against the
// prior corpus only.
func (g *HoneycombGraph) Link(ctx context.Context, doc *domain.Document) error {
	loaded := map[string]*domain.Document{}
	lookup := func(ctx context.Context, date string) (*domain.Document, error) {
		if d, ok := loaded[date]; ok {
			return d, nil
		}
		d, err := g.archive.Get(ctx, date)
		if err != nil {
			return nil, err
		}
		loaded[date] = d
		return d, nil
	}

	amended, err := g.attach(ctx, doc, lookup)
	if err != nil {
		return err
	}

	// Persist amendments in date order so repeated runs touch files in
	// a stable sequence.
	dates := make([]string, 0, len(amended))
	for date := range amended {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		if err := g.archive.Amend(ctx, amended[date]); err != nil {
			return fmt.Errorf("amend %s: %w", date, err)
		}
	}
	if err := g.archive.Amend(ctx, doc); err != nil {
		return fmt.Errorf("amend %s: %w", doc.Date, err)
	}
	return nil
}

// attach mutates doc and its selected neighbours in memory and returns
// the set of amended prior documents keyed by date. lookup resolves a
// date to the live in-memory instance of that document.
func (g *HoneycombGraph) attach(
	ctx context.Context,
	doc *domain.Document,
	lookup func(context.Context, string) (*domain.Document, error),
) (map[string]*domain.Document, error) {
	hits, err := g.engine.Search(ctx, doc.Content, 0)
	if err != nil {
		return nil, fmt.Errorf("rank corpus: %w", err)
	}

	var selected []driven.SearchHit
	for _, hit := range hits {
		if hit.ID == doc.Date || hit.Score < g.cfg.MinScore {
			continue
		}
		selected = append(selected, hit)
		if len(selected) == g.cfg.TopK {
			break
		}
	}
	logger.Debug("honeycomb: %d candidates, %d selected for %s", len(hits), len(selected), doc.Date)

	amended := map[string]*domain.Document{}
	for _, hit := range selected {
		neighbor, err := lookup(ctx, hit.ID)
		if err != nil {
			return nil, fmt.Errorf("load neighbour %s: %w", hit.ID, err)
		}

		evicted := neighbor.AttachNeighbor(doc.Date, hit.Score, g.cfg.TopK)
		if evicted == doc.Date {
			// The neighbour's list is full of stronger links; the pair
			// does not form on either side.
			continue
		}
		amended[neighbor.Date] = neighbor
		if evicted != "" {
			// Keep symmetry: the evicted document must drop its
			// back-reference to the neighbour.
			ev, err := lookup(ctx, evicted)
			if err != nil {
				return nil, fmt.Errorf("load evicted %s: %w", evicted, err)
			}
			ev.RemoveNeighbor(neighbor.Date)
			amended[ev.Date] = ev
		}
		doc.AttachNeighbor(neighbor.Date, hit.Score, g.cfg.TopK)

		delta := socialDelta(neighbor.Content, doc.Content, g.cfg)
		doc.SetSocialLink(neighbor.Date, delta)
		neighbor.SetSocialLink(doc.Date, delta)
	}
	delete(amended, doc.Date)
	return amended, nil
}

// Rebuild re-derives all three link sets and the search index for the
// entire corpus. It replays the chain in ascending date order so the
// result matches what incremental rollups would have produced.
func (g *HoneycombGraph) Rebuild(ctx context.Context) error {
	docs, err := g.archive.All(ctx)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	logger.Section("Honeycomb Rebuild")
	logger.Info("rebuilding links for %d documents", len(docs))

	for _, d := range docs {
		if err := g.engine.Remove(ctx, d.Date); err != nil {
			return fmt.Errorf("reset index %s: %w", d.Date, err)
		}
		d.ClearLinks()
	}

	corpus := map[string]*domain.Document{}
	lookup := func(_ context.Context, date string) (*domain.Document, error) {
		d, ok := corpus[date]
		if !ok {
			return nil, domain.ErrNotFound
		}
		return d, nil
	}

	var prev *domain.Document
	for _, d := range docs {
		if prev != nil {
			d.Temporal.Prev = prev.Date
			prev.Temporal.Next = d.Date
		}
		if _, err := g.attach(ctx, d, lookup); err != nil {
			return err
		}
		if err := g.engine.Index(ctx, d.Date, d.Content); err != nil {
			return fmt.Errorf("index %s: %w", d.Date, err)
		}
		corpus[d.Date] = d
		prev = d
	}

	for _, d := range docs {
		if err := g.archive.Amend(ctx, d); err != nil {
			return fmt.Errorf("amend %s: %w", d.Date, err)
		}
	}
	return nil
}
