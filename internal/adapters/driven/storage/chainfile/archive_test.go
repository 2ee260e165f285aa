package chainfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive(t.TempDir())
	require.NoError(t, err)
	return a
}

func TestAppendGenesis(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	doc, err := a.Append(ctx, "2024-01-01", "first day", nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", doc.Date)
	assert.Equal(t, "", doc.PrevHash)
	assert.Equal(t, domain.ComputeHash("", "first day"), doc.Hash)
	assert.Equal(t, "", doc.Temporal.Prev)
	assert.Equal(t, "", doc.Temporal.Next)
	assert.Equal(t, len("first day"), doc.Metadata["byte_size"])
}

func TestAppendChainsToHead(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	day1, err := a.Append(ctx, "2024-01-01", "first", nil)
	require.NoError(t, err)
	day2, err := a.Append(ctx, "2024-01-02", "second", nil)
	require.NoError(t, err)

	assert.Equal(t, day1.Hash, day2.PrevHash)
	assert.Equal(t, domain.ComputeHash(day1.Hash, "second"), day2.Hash)
	assert.Equal(t, "2024-01-01", day2.Temporal.Prev)

	// The old head's next pointer is amended on disk.
	day1Reloaded, err := a.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", day1Reloaded.Temporal.Next)
}

func TestAppendDuplicateDate(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	_, err := a.Append(ctx, "2024-01-01", "first", nil)
	require.NoError(t, err)

	_, err = a.Append(ctx, "2024-01-01", "again", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateDate)
}

func TestAppendOutOfOrder(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	_, err := a.Append(ctx, "2024-01-02", "later", nil)
	require.NoError(t, err)

	_, err = a.Append(ctx, "2024-01-01", "earlier", nil)
	assert.ErrorIs(t, err, domain.ErrOutOfOrder)
}

func TestAppendInvalidDate(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.Append(context.Background(), "01-02-2024", "x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestAppendMergesCallerMetadata(t *testing.T) {
	a := newTestArchive(t)

	doc, err := a.Append(context.Background(), "2024-01-01", "x", map[string]any{"entry_count": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Metadata["entry_count"])
	assert.NotEmpty(t, doc.Metadata["created_at"])
}

func TestGetNotFound(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.Get(context.Background(), "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetMalformedRecord(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(a.dir, "2024-01-01.json"), []byte("{broken"), 0o644))

	_, err := a.Get(ctx, "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestLatestEmptyArchive(t *testing.T) {
	a := newTestArchive(t)

	doc, err := a.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDatesAscending(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-02-01"} {
		_, err := a.Append(ctx, date, "content "+date, nil)
		require.NoError(t, err)
	}

	dates, err := a.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-02-01"}, dates)
}

func TestAmendLinkFields(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	doc, err := a.Append(ctx, "2024-01-01", "content", nil)
	require.NoError(t, err)

	doc.AttachNeighbor("2024-02-01", 0.42, 5)
	doc.SetSocialLink("2024-02-01", 0.1)
	require.NoError(t, a.Amend(ctx, doc))

	reloaded, err := a.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, reloaded.Semantic, 1)
	assert.Equal(t, "2024-02-01", reloaded.Semantic[0].Target)
	require.Len(t, reloaded.Social.Links, 1)
	assert.Equal(t, 0.1, reloaded.Social.Links[0].Delta)
}

func TestAmendRefusesChainedFieldChanges(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	doc, err := a.Append(ctx, "2024-01-01", "content", nil)
	require.NoError(t, err)

	tampered := *doc
	tampered.Content = "rewritten history"
	err = a.Amend(ctx, &tampered)
	assert.ErrorIs(t, err, domain.ErrImmutableField)
}

func TestVerifyValidChain(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := a.Append(ctx, date, "content "+date, nil)
		require.NoError(t, err)
	}

	report, err := a.Verify(ctx, "")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 3, report.Checked)
	assert.Empty(t, report.FirstBreak)
}

func TestVerifyDetectsTampering(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := a.Append(ctx, date, "content "+date, nil)
		require.NoError(t, err)
	}

	// Rewrite the middle document's content directly on disk.
	doc, err := a.Get(ctx, "2024-01-02")
	require.NoError(t, err)
	doc.Content = "tampered"
	require.NoError(t, a.write(doc))

	report, err := a.Verify(ctx, "")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, "2024-01-02", report.FirstBreak)
	assert.Equal(t, 2, report.Checked)
}

func TestVerifyFromDateTrustsAnchor(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := a.Append(ctx, date, "content "+date, nil)
		require.NoError(t, err)
	}

	report, err := a.Verify(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.Checked)
}

func TestVerifyFromUnknownDate(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	_, err := a.Append(ctx, "2024-01-01", "content", nil)
	require.NoError(t, err)

	_, err = a.Verify(ctx, "2024-06-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyEmptyArchive(t *testing.T) {
	a := newTestArchive(t)

	report, err := a.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 0, report.Checked)
}
