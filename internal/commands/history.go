package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
)

var historyCmd = &cobra.Command{
	Use:     "history [days]",
	Aliases: []string{"log"},
	Short:   "Show past working days and their activities",
	Long: `Show the latest working days, newest first, with their activities in the
order they were started. Without a count (or with anything that is not a
positive number) the configured default of 7 days is used.`,
	Args: cobra.MaximumNArgs(1),

	// "history -3" is a count, not a flag
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		count := tr.HistoryCount(input)

		days, err := tr.History(count)
		if err != nil {
			return err
		}

		report.History(cmd.OutOrStdout(), days, count)
		return nil
	}),
}
