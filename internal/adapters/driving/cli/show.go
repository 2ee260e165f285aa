package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show an archived document",
	Long: `Prints the archived document for a date, including its hash-chain
fields and honeycomb links. Without a date, shows the chain head.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		d, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("show failed: %w", err)
		}
		if showJSON {
			return outputJSON(cmd, d)
		}
		printDocument(cmd, d)
		return nil
	}

	d, err := store.Latest(cmd.Context())
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	if d == nil {
		cmd.Println("Archive is empty.")
		return nil
	}
	if showJSON {
		return outputJSON(cmd, d)
	}
	printDocument(cmd, d)
	return nil
}
