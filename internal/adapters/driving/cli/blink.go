package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var blinkRollup bool

var blinkCmd = &cobra.Command{
	Use:   "blink [text]",
	Short: "Flush context and print the recall text",
	Long: `Stages a context flush for a seamless agent restart and prints the
recall text the agent will wake up to. With --rollup the flush is
archived immediately instead of waiting for the next rollup.

Reads from stdin when no text argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlink,
}

func init() {
	blinkCmd.Flags().BoolVar(&blinkRollup, "rollup", false, "roll up immediately after staging")
	rootCmd.AddCommand(blinkCmd)
}

func runBlink(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("nothing to flush")
	}

	recall, err := store.Blink(cmd.Context(), text, blinkRollup)
	if err != nil {
		return fmt.Errorf("blink failed: %w", err)
	}
	cmd.Println(recall)
	return nil
}
