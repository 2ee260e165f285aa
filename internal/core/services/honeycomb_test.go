package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comb-labs/comb-cli/internal/adapters/driven/search/bm25"
	"github.com/comb-labs/comb-cli/internal/adapters/driven/storage/chainfile"
	"github.com/comb-labs/comb-cli/internal/core/domain"
)

func newGraphStore(t *testing.T, cfg domain.Config) *testStore {
	t.Helper()
	root := t.TempDir()

	archive, err := chainfile.NewArchive(root)
	require.NoError(t, err)
	staging, err := chainfile.NewStagingLog(root)
	require.NoError(t, err)
	clock := &testClock{date: "2024-01-01"}

	store, err := NewStoreService(
		context.Background(),
		staging,
		archive,
		bm25.New(cfg.Search.K1, cfg.Search.B),
		clock,
		cfg,
	)
	require.NoError(t, err)

	return &testStore{store: store, archive: archive, staging: staging, clock: clock, root: root}
}

func TestEvictionCascadesToBackReference(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Graph.TopK = 1
	ts := newGraphStore(t, cfg)
	ctx := context.Background()

	ts.archiveDay(t, "2024-01-01", "cache eviction policy alpha omega sigma")
	ts.archiveDay(t, "2024-01-02", "cache eviction policy beta")

	// Day 1 and day 2 are each other's single neighbour.
	day1, err := ts.store.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, day1.Semantic, 1)
	assert.Equal(t, "2024-01-02", day1.Semantic[0].Target)

	// Day 3 repeats day 1 verbatim, so it outranks day 2 in day 1's
	// list and evicts it.
	ts.archiveDay(t, "2024-01-03", "cache eviction policy alpha omega sigma")

	day1, err = ts.store.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, day1.Semantic, 1)
	assert.Equal(t, "2024-01-03", day1.Semantic[0].Target)

	// The evicted side loses its back-reference too.
	day2, err := ts.store.Get(ctx, "2024-01-02")
	require.NoError(t, err)
	for _, n := range day2.Semantic {
		assert.NotEqual(t, "2024-01-01", n.Target)
	}

	day3, err := ts.store.Get(ctx, "2024-01-03")
	require.NoError(t, err)
	require.Len(t, day3.Semantic, 1)
	assert.Equal(t, "2024-01-01", day3.Semantic[0].Target)
}

func TestSocialLinksMirroredBetweenNeighbours(t *testing.T) {
	ts := newGraphStore(t, domain.DefaultConfig())
	ctx := context.Background()

	ts.archiveDay(t, "2024-01-01", "[user] the cache design is wrong and broken [assistant] no")
	ts.archiveDay(t, "2024-01-02", "[user] thanks the cache design is great [assistant] perfect, happy to confirm")

	day1, err := ts.store.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	day2, err := ts.store.Get(ctx, "2024-01-02")
	require.NoError(t, err)

	require.Len(t, day2.Social.Links, 1)
	require.Len(t, day1.Social.Links, 1)
	assert.Equal(t, "2024-01-01", day2.Social.Links[0].Target)
	assert.Equal(t, "2024-01-02", day1.Social.Links[0].Target)

	// Mirrored with the same delta; the turn went from hostile to
	// warm, so the relationship strengthened.
	assert.Equal(t, day1.Social.Links[0].Delta, day2.Social.Links[0].Delta)
	assert.Greater(t, day2.Social.Links[0].Delta, 0.0)
	assert.Equal(t, []string{"2024-01-01"}, day2.Social.Strengthened())
	assert.Empty(t, day2.Social.Cooled())
}

func TestNoSemanticLinkBelowThreshold(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Graph.MinScore = 0.9
	ts := newGraphStore(t, cfg)
	ctx := context.Background()

	ts.archiveDay(t, "2024-01-01", "cache eviction policy discussion")
	ts.archiveDay(t, "2024-01-02", "cache sizing experiments and notes")

	day2, err := ts.store.Get(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.Empty(t, day2.Semantic)
	assert.Empty(t, day2.Social.Links)
}
