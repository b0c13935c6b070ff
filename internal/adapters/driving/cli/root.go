// Package cli implements the cobra command surface for regsync.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "regsync",
	Short: "Archive Federal Register notices to object storage",
	Long: `regsync retrieves regulatory notices published by the Federal
Register for a configured set of agencies, stores each notice's PDF in
an object store bucket, and maintains a durable index of abstracts.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the config file (default \"config.toml\")")
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
