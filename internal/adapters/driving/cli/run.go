package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/regsync-labs/regsync-cli/internal/adapters/driven/config/file"
	miniostore "github.com/regsync-labs/regsync-cli/internal/adapters/driven/objectstore/minio"
	"github.com/regsync-labs/regsync-cli/internal/adapters/driven/registry"
	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/services"
)

var fullFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch new notices and archive them",
	Long: `Syncs every configured agency against the abstract index.
By default the traversal is incremental: it stops at the first
already-indexed notice per agency. With --full every notice is visited
and only the storage of known documents is skipped.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&fullFlag, "full", false, "visit every notice instead of stopping at the first known one")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := file.Load(configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := miniostore.NewStore(ctx, miniostore.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Region:    cfg.Minio.Region,
		Secure:    cfg.Minio.Secure,
		Bucket:    cfg.BucketName,
	})
	if err != nil {
		return fmt.Errorf("connect object store: %w", err)
	}

	source := registry.NewSource(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		RateLimit: registry.RateLimitConfig{
			RequestsPerSecond: cfg.Registry.RequestsPerSecond,
			BurstSize:         cfg.Registry.Burst,
		},
	})

	index, err := services.LoadIndex(ctx, store, domain.IndexKey(cfg.ParentFolder), cfg.Agencies)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	engine := services.NewSyncEngine(source, store, index, cfg.ParentFolder, cfg.Agencies)
	runner := services.NewRunner(engine, index, cfg.Agencies, cfg.CheckpointEachAgency)

	mode := selectMode(fullFlag)
	cmd.Printf("Starting %s run over %d agencies...\n", mode, len(cfg.Agencies))

	summary, runErr := runner.Run(ctx, mode)
	printSummary(cmd, summary)

	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	return nil
}

// selectMode maps the --full flag to a sync mode.
func selectMode(full bool) domain.SyncMode {
	if full {
		return domain.ModeFull
	}
	return domain.ModeIncremental
}

// printSummary reports per-agency and total counts.
func printSummary(cmd *cobra.Command, run *domain.RunSummary) {
	if run == nil {
		return
	}
	for _, a := range run.Agencies {
		if a.Err != nil {
			cmd.Printf("  %s: failed: %v\n", a.Agency, a.Err)
			continue
		}
		cmd.Printf("  %s: %d archived, %d skipped, %d failed (%s)\n",
			a.Agency, a.Processed, a.Skipped, a.Failed, a.Elapsed.Round(time.Millisecond))
	}
	cmd.Printf("Run %s finished in %s: %d archived, %d skipped, %d failed, %d agencies failed\n",
		run.RunID, run.Elapsed.Round(time.Millisecond),
		run.TotalProcessed(), run.TotalSkipped(), run.TotalFailed(), run.AgenciesFailed())
}
