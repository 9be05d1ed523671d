package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yaz-U/ai-news-daily/handler"
	"github.com/Yaz-U/ai-news-daily/job"
	"github.com/Yaz-U/ai-news-daily/metrics"
)

var noColdStart bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Stay resident and run the pipeline at each trigger time",
	Long: `Schedule runs the pipeline once at start, then at every configured
trigger time, each as a separate "run" child process. SIGINT or SIGTERM stops
the loop after the current run finishes.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&noColdStart, "no-cold-start", false, "skip the run at process start")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	logger, closer, err := initLogging("scheduler", "scheduler")
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	shutdown := initTelemetry(ctx, cfg, logger)
	defer shutdownTelemetry(shutdown, logger)

	triggers, err := job.ParseTriggerSet(cfg.Scheduler.Triggers, cfg.Location())
	if err != nil {
		return err
	}
	runner, err := job.NewChildRunner(cfgFile, cfg.Scheduler.RunTimeout, logger)
	if err != nil {
		return err
	}

	stopper := job.NewStopper()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case sig := <-signals:
			logger.Info("stop requested, finishing current run", "signal", sig.String())
			stopper.Stop()
		case <-stopper.Done():
		}
	}()

	collector := metrics.New()
	status := job.NewStatus(time.Now())

	if cfg.Scheduler.StatusAddr != "" {
		server := handler.NewStatusServer(status, collector.Registry(), cfg.OTel.Enabled, cfg.OTel.ServiceName, logger)
		handler.StartStatusServer(stopperContext(ctx, stopper), server, cfg.Scheduler.StatusAddr, logger)
	}

	scheduler := job.NewScheduler(triggers, runner, stopper, status, collector, job.Options{
		RunOnStart:    cfg.Scheduler.RunOnStart && !noColdStart,
		ChunkInterval: cfg.Scheduler.ChunkInterval,
	}, logger)

	scheduler.Run(ctx)
	return nil
}
