package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// outputJSON pretty-prints any value to the command's stdout.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printDocument renders one archived document as a readable block.
func printDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Date:      %s\n", doc.Date)
	cmd.Printf("Hash:      %s\n", doc.Hash)
	if doc.PrevHash != "" {
		cmd.Printf("Prev hash: %s\n", doc.PrevHash)
	}
	if doc.SimilarityScore != nil {
		cmd.Printf("Score:     %.4f\n", *doc.SimilarityScore)
	}
	if doc.Temporal.Prev != "" || doc.Temporal.Next != "" {
		cmd.Printf("Temporal:  prev=%s next=%s\n", doc.Temporal.Prev, doc.Temporal.Next)
	}
	for _, n := range doc.Semantic {
		cmd.Printf("Semantic:  %s (%.4f)\n", n.Target, n.Score)
	}
	for _, l := range doc.Social.Links {
		kind := "strengthened"
		if l.Delta < 0 {
			kind = "cooled"
		}
		cmd.Printf("Social:    %s (%+.4f, %s)\n", l.Target, l.Delta, kind)
	}
	cmd.Println()
	cmd.Println(doc.Content)
}
