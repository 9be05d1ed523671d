package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/utils/output"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one curation pass now",
	Long: `Run fetches every feed, builds the digest and commentary, archives the
snapshot and publishes the page. It exits non-zero when another run holds the
lock or the snapshot cannot be written.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, closer, err := initLogging("run", "run")
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := initTelemetry(ctx, cfg, logger)
	defer shutdownTelemetry(shutdown, logger)

	collector := metrics.New()
	pipeline, err := buildPipeline(cfg, collector, logger)
	if err != nil {
		return err
	}

	report, err := pipeline.Execute(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRunInProgress) {
			logger.Warn("run skipped, lock held by another run")
			return &output.CLIError{
				Summary:    err.Error(),
				Suggestion: "wait for the current run to finish",
				ExitCode:   output.ExitRunInProgress,
			}
		}
		return err
	}

	if report.Empty {
		logger.Warn("run produced no snapshot", "run_id", report.RunID)
	}
	return nil
}
