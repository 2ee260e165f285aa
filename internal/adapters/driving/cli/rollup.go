package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rollupDate string

var rollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Roll staged entries into an archived document",
	Long: `Promotes the date's staged entries into a single immutable document
at the head of the hash chain, computes its honeycomb links and clears
the staging buffer. A no-op when nothing is staged.`,
	Args: cobra.NoArgs,
	RunE: runRollup,
}

func init() {
	rollupCmd.Flags().StringVarP(&rollupDate, "date", "d", "", "rollup date in YYYY-MM-DD (default today)")
	rootCmd.AddCommand(rollupCmd)
}

func runRollup(cmd *cobra.Command, _ []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	doc, err := store.Rollup(cmd.Context(), rollupDate)
	if err != nil {
		return fmt.Errorf("rollup failed: %w", err)
	}
	if doc == nil {
		cmd.Println("Nothing staged.")
		return nil
	}

	cmd.Printf("Archived %s (%d bytes, %d semantic links, %d social links).\n",
		doc.Date, len(doc.Content), len(doc.Semantic), len(doc.Social.Links))
	return nil
}
