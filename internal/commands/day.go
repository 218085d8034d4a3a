package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Start or end your working day",
}

var dayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a working day",
	Args:  cobra.NoArgs,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		day, err := tr.StartDay()
		if err != nil {
			return refusedOrError(cmd, err)
		}

		report.DayStarted(cmd.OutOrStdout(), day)
		return nil
	}),
}

var dayEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the working day and show its summary",
	Long: `End the working day and show its total duration together with every
activity logged in it. A running activity has to be ended first.`,
	Args: cobra.NoArgs,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		summary, err := tr.EndDay()
		if err != nil {
			return refusedOrError(cmd, err)
		}

		report.DayEnded(cmd.OutOrStdout(), summary)
		return nil
	}),
}

func init() {
	dayCmd.AddCommand(dayStartCmd)
	dayCmd.AddCommand(dayEndCmd)
}
