package bm25

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexCorpus(t *testing.T, e *Engine) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.Index(ctx, "2024-01-01", "the quick brown fox jumps over the lazy dog"))
	require.NoError(t, e.Index(ctx, "2024-01-02", "python programming language tutorial for beginners"))
	require.NoError(t, e.Index(ctx, "2024-01-03", "the dog sleeps all day in the sun"))
}

func TestSearchRanksMatchingDocumentFirst(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)

	hits, err := e.Search(context.Background(), "quick fox", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "2024-01-01", hits[0].ID)

	hits, err = e.Search(context.Background(), "python programming", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "2024-01-02", hits[0].ID)
}

func TestSearchScoresBounded(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)

	hits, err := e.Search(context.Background(), "the dog", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Greater(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 1.0)
	}
}

func TestSearchSelfMatchScoresHighest(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)

	hits, err := e.Search(context.Background(), "python programming language tutorial for beginners", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "2024-01-02", hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestSearchEmptyQuery(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)

	hits, err := e.Search(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = e.Search(context.Background(), "zzzzunknownterm", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEmptyCorpus(t *testing.T) {
	e := New(0, 0)
	hits, err := e.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchLimit(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)

	hits, err := e.Search(context.Background(), "the dog fox sun python", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearchOrderedByScoreThenID(t *testing.T) {
	e := New(0, 0)
	ctx := context.Background()
	require.NoError(t, e.Index(ctx, "2024-02-02", "alpha beta"))
	require.NoError(t, e.Index(ctx, "2024-02-01", "alpha beta"))

	hits, err := e.Search(ctx, "alpha", 0)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, hits[0].Score, hits[1].Score)
	assert.Equal(t, "2024-02-01", hits[0].ID)
	assert.Equal(t, "2024-02-02", hits[1].ID)
}

func TestRemoveDropsDocument(t *testing.T) {
	e := New(0, 0)
	indexCorpus(t, e)
	ctx := context.Background()

	require.NoError(t, e.Remove(ctx, "2024-01-01"))

	hits, err := e.Search(ctx, "quick fox", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	// Removing an unknown id is a no-op.
	require.NoError(t, e.Remove(ctx, "2030-01-01"))
}

func TestReindexReplacesDocument(t *testing.T) {
	e := New(0, 0)
	ctx := context.Background()
	require.NoError(t, e.Index(ctx, "2024-01-01", "cats and kittens"))
	require.NoError(t, e.Index(ctx, "2024-01-01", "dogs and puppies"))

	hits, err := e.Search(ctx, "cats", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = e.Search(ctx, "dogs", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "2024-01-01", hits[0].ID)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "42"}, Tokenize("Hello, World! 42"))
	assert.Empty(t, Tokenize("!!! ---"))
}
