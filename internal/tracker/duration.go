package tracker

import (
	"fmt"

	"github.com/balkashynov/worklog/internal/config"
)

// FormatDuration renders whole seconds as HH:MM:SS. Hours keep growing past
// 99 instead of rolling into days.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseHistoryCount turns user input into a day count. Blank, non-numeric or
// non-positive input means the default.
func ParseHistoryCount(input string) int {
	return (&Tracker{historyDays: config.DefaultHistoryDays}).HistoryCount(input)
}
