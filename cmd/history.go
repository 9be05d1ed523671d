package cmd

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/repository"
	"github.com/Yaz-U/ai-news-daily/utils/html_parser"
	"github.com/Yaz-U/ai-news-daily/utils/output"
)

var (
	historyLimit  int
	historyLatest bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of snapshots (default archive.history_limit)")
	historyCmd.Flags().BoolVar(&historyLatest, "latest", false, "show the digest of the latest snapshot")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger, closer, err := initLogging("cli", "")
	if err != nil {
		return err
	}
	defer closer.Close()

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.Archive.HistoryLimit
	}

	repo := repository.NewSnapshotRepository(cfg.Paths.DataDir, logger)
	if historyLatest {
		snap, err := repo.Latest(cmd.Context())
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			printer.Warning("no snapshots in %s", cfg.Paths.DataDir)
			return nil
		}
		if err != nil {
			return err
		}
		renderLatest(printer, snap, cfg.Location())
		return nil
	}

	snaps, err := repo.History(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		printer.Warning("no snapshots in %s", cfg.Paths.DataDir)
		return nil
	}

	printer.Header("Snapshots")
	renderHistory(printer, snaps, cfg.Location())
	return nil
}

func renderHistory(p *output.Printer, snaps []*domain.Snapshot, loc *time.Location) {
	table := output.NewTable(p.Out(), []string{"Time", "Slot", "Articles", "Summary", "Commentary", "Headline"})
	for _, snap := range snaps {
		table.AddRow(
			snap.Timestamp.In(loc).Format("2006-01-02 15:04"),
			snap.TimeSlot.Label(),
			strconv.Itoa(len(snap.RawArticles)),
			generationBadge(p, snap.Generation.Summary),
			generationBadge(p, snap.Generation.Commentary),
			html_parser.TruncateRunes(snap.Summary.NewsSummary, 40),
		)
	}
	if err := table.Render(); err != nil {
		p.Error("render table: %v", err)
	}
}

func generationBadge(p *output.Printer, info domain.GenerationInfo) string {
	if info.Fallback {
		return p.Badge(false, "fallback")
	}
	return p.Badge(true, info.Model)
}

func renderLatest(p *output.Printer, snap *domain.Snapshot, loc *time.Location) {
	p.Header(snap.Timestamp.In(loc).Format("2006-01-02 15:04") + " " + snap.TimeSlot.Label())
	p.Info("%s", snap.Summary.NewsSummary)
	p.Info("summary: %s  commentary: %s",
		generationBadge(p, snap.Generation.Summary),
		generationBadge(p, snap.Generation.Commentary))

	table := output.NewTable(p.Out(), []string{"#", "Source", "Title"})
	for _, a := range snap.Summary.TopArticles {
		table.AddRow(strconv.Itoa(a.Rank), a.Source, html_parser.TruncateRunes(a.Title, 60))
	}
	if err := table.Render(); err != nil {
		p.Error("render table: %v", err)
	}
}
