package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comb-labs/comb-cli/internal/core/ports/driving"
)

var (
	walkDirection string
	walkDepth     int
	walkJSON      bool
)

var walkCmd = &cobra.Command{
	Use:   "walk [date]",
	Short: "Traverse the honeycomb graph",
	Long: `Walks the graph from a starting date.

Temporal walks follow the chain forward through next pointers.
Semantic walks explore neighbours breadth-first by similarity links.`,
	Args: cobra.ExactArgs(1),
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().StringVarP(&walkDirection, "direction", "D", "temporal", "walk direction: temporal or semantic")
	walkCmd.Flags().IntVarP(&walkDepth, "depth", "n", 0, "maximum documents to visit (default 100)")
	walkCmd.Flags().BoolVar(&walkJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(walkCmd)
}

func runWalk(cmd *cobra.Command, args []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	docs, err := store.Walk(cmd.Context(), args[0], driving.WalkDirection(walkDirection), walkDepth)
	if err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}

	if walkJSON {
		return outputJSON(cmd, docs)
	}

	for i, doc := range docs {
		snippet := doc.Content
		if len(snippet) > 80 {
			snippet = snippet[:80] + "..."
		}
		cmd.Printf("  [%d] %s  %s\n", i+1, doc.Date, snippet)
	}
	cmd.Printf("Visited %d documents.\n", len(docs))
	return nil
}
