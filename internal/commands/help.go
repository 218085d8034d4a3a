package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show help for worklog",
	Long:  `Display help for all worklog commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), customHelp)
	},
}

const customHelp = `
worklog - working day and activity log

  worklog                     Interactive menu
    --no-ui                   Print the current status and exit

  day start                   Start a working day
  day end                     End the working day, print totals per activity

  activity start <text>       Start an activity (alias: act)
  activity end                End the running activity

  history [days]              Last working days, newest first (default 7)
  status                      What is open right now
  version                     Build information

GLOBAL FLAGS:
  --db <path>                 SQLite database (default ~/.worklog/worklog.db)
  --debug                     Mirror debug logs to stderr

Data lives in $WORKLOG_HOME (default ~/.worklog): worklog.db, config.json, logs/.

`
