package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived documents",
	Long: `Ranks archived documents against the query using BM25-weighted
cosine similarity. Scores are in [0, 1].`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	docs, err := store.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, doc := range docs {
		score := 0.0
		if doc.SimilarityScore != nil {
			score = *doc.SimilarityScore
		}
		snippet := doc.Content
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, doc.Date, score)
		cmd.Printf("      %s\n", snippet)
		cmd.Println()
	}
	return nil
}
