package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild all honeycomb links and the search index",
	Long: `Re-derives every document's temporal, semantic and social links from
the archive's content, replaying the chain in date order. Content and
hashes are never touched. Useful after tuning the graph configuration.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	if err := store.Rebuild(cmd.Context()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	cmd.Println("Rebuild complete.")
	return nil
}
