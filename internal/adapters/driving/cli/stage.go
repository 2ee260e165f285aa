package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var stageDate string

var stageCmd = &cobra.Command{
	Use:   "stage [text]",
	Short: "Stage a conversation dump for later rollup",
	Long: `Appends a raw conversation dump to the date's staging buffer.
Staged entries are mutable scratch space until they are rolled up.

Reads from stdin when no text argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStage,
}

func init() {
	stageCmd.Flags().StringVarP(&stageDate, "date", "d", "", "staging date in YYYY-MM-DD (default today)")
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if text == "" {
		return fmt.Errorf("nothing to stage")
	}

	if err := store.Stage(cmd.Context(), text, nil, stageDate); err != nil {
		return fmt.Errorf("stage failed: %w", err)
	}

	cmd.Printf("Staged %d bytes.\n", len(text))
	return nil
}
