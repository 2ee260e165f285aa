package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comb-labs/comb-cli/internal/adapters/driven/search/bm25"
	"github.com/comb-labs/comb-cli/internal/adapters/driven/storage/chainfile"
	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/services"
)

// fixedClock pins "today" so command output is deterministic.
type fixedClock struct{ date string }

func (c fixedClock) Now() time.Time {
	t, _ := time.Parse(domain.DateFormat, c.date)
	return t.UTC()
}

func (c fixedClock) Today() string { return c.date }

// setupTestStore points the commands at a real store in a temp dir.
func setupTestStore(t *testing.T) func() {
	t.Helper()

	root := t.TempDir()
	archive, err := chainfile.NewArchive(root)
	require.NoError(t, err)
	staging, err := chainfile.NewStagingLog(root)
	require.NoError(t, err)

	store, err := services.NewStoreService(
		context.Background(),
		staging,
		archive,
		bm25.New(0, 0),
		fixedClock{date: "2024-06-01"},
		domain.DefaultConfig(),
	)
	require.NoError(t, err)

	// Flag variables persist across Execute calls; start each test clean.
	stageDate = ""
	rollupDate = ""
	searchJSON = false

	SetStore(store)
	return func() { SetStore(nil) }
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestStageAndRollup(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	out, err := execute(t, "stage", "we debated the cache design")
	require.NoError(t, err)
	assert.Contains(t, out, "Staged")

	out, err = execute(t, "rollup")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived 2024-06-01")
}

func TestRollupNothingStaged(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	out, err := execute(t, "rollup")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing staged")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	_, err := execute(t, "search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	out, err := execute(t, "search", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestSearchCmd_FindsArchivedDocument(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	_, err := execute(t, "stage", "--date", "2024-05-30", "the cache eviction policy discussion")
	require.NoError(t, err)
	_, err = execute(t, "rollup", "--date", "2024-05-30")
	require.NoError(t, err)

	out, err := execute(t, "search", "cache eviction")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-05-30")
}

func TestVerifyCmd_ValidChain(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	_, err := execute(t, "stage", "day one")
	require.NoError(t, err)
	_, err = execute(t, "rollup")
	require.NoError(t, err)

	out, err := execute(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Chain valid")
}

func TestShowCmd_EmptyArchive(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	out, err := execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Archive is empty")
}

func TestRecallCmd_EmptyStore(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	out, err := execute(t, "recall")
	require.NoError(t, err)
	assert.Contains(t, out, "(empty memory)")
}

func TestStatsCmd(t *testing.T) {
	cleanup := setupTestStore(t)
	defer cleanup()

	_, err := execute(t, "stage", "day one")
	require.NoError(t, err)
	_, err = execute(t, "rollup")
	require.NoError(t, err)

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Documents:      1")
	assert.Contains(t, out, "Chain valid:    true")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "comb version")
}
