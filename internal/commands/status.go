package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open working day and running activity",
	Args:  cobra.NoArgs,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		report.Status(cmd.OutOrStdout(), tr.Status())
		return nil
	}),
}
