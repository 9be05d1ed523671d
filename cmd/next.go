package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/job"
	"github.com/Yaz-U/ai-news-daily/utils/output"
)

var nextCount int

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the upcoming trigger times",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		triggers, err := job.ParseTriggerSet(cfg.Scheduler.Triggers, cfg.Location())
		if err != nil {
			return err
		}
		printer.Header("Upcoming runs (" + cfg.Location().String() + ")")
		return renderNext(printer, triggers, time.Now(), nextCount)
	},
}

func init() {
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 4, "number of trigger times to show")
	rootCmd.AddCommand(nextCmd)
}

func upcoming(triggers *job.TriggerSet, now time.Time, n int) []time.Time {
	times := make([]time.Time, 0, n)
	at := now
	for range n {
		at = triggers.Next(at)
		times = append(times, at)
	}
	return times
}

func renderNext(p *output.Printer, triggers *job.TriggerSet, now time.Time, n int) error {
	table := output.NewTable(p.Out(), []string{"When", "Slot", "In"})
	for _, at := range upcoming(triggers, now, n) {
		table.AddRow(
			at.Format("2006-01-02 (Mon) 15:04"),
			domain.TimeSlotFor(at).Label(),
			at.Sub(now).Truncate(time.Minute).String(),
		)
	}
	return table.Render()
}
