// Package cmd contains the ai-news-daily commands
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yaz-U/ai-news-daily/config"
	"github.com/Yaz-U/ai-news-daily/utils/logger"
	"github.com/Yaz-U/ai-news-daily/utils/output"
)

const serviceName = "ai-news-daily"

var (
	cfgFile   string
	colorFlag string
	cfg       *config.Config
	printer   *output.Printer
	version   = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "ai-news-daily",
	Short: "Curate AI news into a digest page several times a day",
	Long: `ai-news-daily collects AI-related articles from a fixed set of feeds,
asks a completion backend for a Japanese digest and commentary, archives each
run as a JSON snapshot and publishes a static page.

Example usage:
  ai-news-daily run                 # one pass now
  ai-news-daily schedule            # stay resident and run at each trigger
  ai-news-daily history --limit 5   # list archived snapshots
  ai-news-daily next                # show upcoming trigger times`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ai-news-daily.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output: auto, always, never")
}

func initConfig() error {
	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError}
	}
	printer = output.NewPrinter(mode)

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "invalid configuration",
			Detail:     err.Error(),
			Suggestion: "check the config file or use --config",
			ExitCode:   output.ExitConfigError,
		}
	}
	return nil
}

// initLogging builds the process logger. prefix selects the monthly file;
// an empty prefix logs to stderr only, which the read-only commands use.
func initLogging(component, prefix string) (*slog.Logger, io.Closer, error) {
	opts := logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: serviceName,
		Component:   component,
		Location:    cfg.Location(),
		OTelEnabled: cfg.OTel.Enabled,
	}
	if prefix == "" {
		opts.Format = "text"
		opts.Stdout = os.Stderr
		opts.OTelEnabled = false
	} else {
		opts.Dir = cfg.Paths.LogDir
		opts.FilePrefix = prefix
	}

	l, closer, err := logger.Init(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return l, closer, nil
}
