package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

var (
	verifyFrom string
	verifyJSON bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify hash-chain integrity",
	Long: `Recomputes every document hash from the genesis document (or from
--from) and checks the chain's temporal pointers. Exits non-zero when
the chain is broken, reporting the first broken date.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFrom, "from", "", "verify from this date forward (default genesis)")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	store, err := ensureStore(cmd.Context())
	if err != nil {
		return err
	}

	report, err := store.Verify(cmd.Context(), verifyFrom)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if verifyJSON {
		if err := outputJSON(cmd, report); err != nil {
			return err
		}
	} else if report.Valid {
		cmd.Printf("Chain valid: %d documents checked.\n", report.Checked)
	} else {
		cmd.Printf("Chain BROKEN at %s (%d documents checked).\n", report.FirstBreak, report.Checked)
	}

	if !report.Valid {
		return fmt.Errorf("%w: first break at %s", domain.ErrIntegrity, report.FirstBreak)
	}
	return nil
}
