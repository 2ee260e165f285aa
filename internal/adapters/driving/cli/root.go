// Package cli provides the comb command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comb-labs/comb-cli/internal/adapters/driven/config/file"
	"github.com/comb-labs/comb-cli/internal/adapters/driven/search/bm25"
	"github.com/comb-labs/comb-cli/internal/adapters/driven/storage/chainfile"
	"github.com/comb-labs/comb-cli/internal/core/ports/driving"
	"github.com/comb-labs/comb-cli/internal/core/services"
	"github.com/comb-labs/comb-cli/internal/logger"
)

var (
	storeRoot string
	verbose   bool
)

// storeService is the opened store. Tests inject their own via SetStore.
var storeService driving.Store

var rootCmd = &cobra.Command{
	Use:   "comb",
	Short: "Hash-chained daily memory with a honeycomb link graph",
	Long: `Comb is a persistent memory store for long-running agents.

Raw conversation dumps are staged during the day and rolled up into one
immutable, hash-chained document per date. Each archived document is
linked into a honeycomb graph: temporal links to its neighbours in the
chain, semantic links to its most similar documents, and social links
tracking how the relationship between linked days evolved.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeRoot, "store", "s", defaultStoreRoot(), "store root directory (env COMB_STORE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func defaultStoreRoot() string {
	if root := os.Getenv("COMB_STORE"); root != "" {
		return root
	}
	return "./comb-store"
}

// ensureStore opens the store on first use: configuration, file-backed
// archive and staging, and the BM25 engine rebuilt from the archive.
func ensureStore(ctx context.Context) (driving.Store, error) {
	if storeService != nil {
		return storeService, nil
	}

	cfg, err := file.Load(storeRoot)
	if err != nil {
		return nil, err
	}

	archive, err := chainfile.NewArchive(storeRoot)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	staging, err := chainfile.NewStagingLog(storeRoot)
	if err != nil {
		return nil, fmt.Errorf("open staging: %w", err)
	}
	engine := bm25.New(cfg.Search.K1, cfg.Search.B)

	store, err := services.NewStoreService(ctx, staging, archive, engine, nil, cfg)
	if err != nil {
		return nil, err
	}
	storeService = store
	return store, nil
}

// SetStore overrides the store the commands run against. Used by tests.
func SetStore(s driving.Store) {
	storeService = s
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
