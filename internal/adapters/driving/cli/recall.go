package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recallLimit  int
	recallStaged bool
)

var recallCmd = &cobra.Command{
	Use:   "recall",
	Short: "Reconstruct recent context",
	Long: `Prints recent operational context for an agent waking up: staged
entries that have not been rolled up yet, then the most recent archived
documents, newest first.`,
	Args: cobra.NoArgs,
	RunE: runRecall,
}

func init() {
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 5, "archived documents to include")
	recallCmd.Flags().BoolVar(&recallStaged, "staged", true, "include staged entries")
	rootCmd.AddCommand(recallCmd)
}

func runRecall(cmd *cobra.Command, _ []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	text, err := store.Recall(cmd.Context(), recallLimit, recallStaged)
	if err != nil {
		return fmt.Errorf("recall failed: %w", err)
	}
	cmd.Println(text)
	return nil
}
