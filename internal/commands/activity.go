package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"act"},
	Short:   "Start or end an activity within the working day",
}

var activityStartCmd = &cobra.Command{
	Use:   "start [description]",
	Short: "Start an activity",
	Long: `Start an activity in the open working day. All arguments are joined into
the description.

Examples:
  worklog activity start write spec
  worklog act start "review PR #42"`,
	Args: cobra.ArbitraryArgs,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		activity, err := tr.StartActivity(strings.Join(args, " "))
		if err != nil {
			return refusedOrError(cmd, err)
		}

		report.ActivityStarted(cmd.OutOrStdout(), activity)
		return nil
	}),
}

var activityEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the running activity",
	Args:  cobra.NoArgs,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		activity, err := tr.EndActivity()
		if err != nil {
			return refusedOrError(cmd, err)
		}

		report.ActivityEnded(cmd.OutOrStdout(), activity)
		return nil
	}),
}

func init() {
	activityCmd.AddCommand(activityStartCmd)
	activityCmd.AddCommand(activityEndCmd)
}
