package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the store",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		return outputJSON(cmd, stats)
	}

	cmd.Printf("Documents:      %d\n", stats.DocumentCount)
	cmd.Printf("Total bytes:    %d\n", stats.TotalBytes)
	cmd.Printf("Chain length:   %d\n", stats.ChainLength)
	cmd.Printf("Semantic links: %d\n", stats.SemanticLinks)
	cmd.Printf("Social links:   %d\n", stats.SocialLinks)
	cmd.Printf("Chain valid:    %t\n", stats.ChainValid)
	if len(stats.StagedDates) > 0 {
		cmd.Printf("Staged dates:   %s\n", strings.Join(stats.StagedDates, ", "))
	}
	return nil
}
