package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/balkashynov/worklog/internal/models"
	"github.com/balkashynov/worklog/internal/tracker"
)

var (
	completedLabel  = color.New(color.FgGreen).Sprint("COMPLETED")
	inProgressLabel = color.New(color.FgYellow).Sprint("IN PROGRESS")
	noticeMark      = color.New(color.FgYellow).Sprint("!")
)

func fprintf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// DayStarted prints the confirmation for a freshly opened working day
func DayStarted(w io.Writer, day *models.WorkingDay) {
	fprintf(w, "Working day started at %s\n", day.StartTime)
}

// ActivityStarted prints the confirmation for a freshly opened activity
func ActivityStarted(w io.Writer, activity *models.Activity) {
	fprintf(w, "Activity '%s' started at %s\n", activity.Description, activity.StartTime)
}

// ActivityEnded prints the closed activity with its duration
func ActivityEnded(w io.Writer, activity *models.Activity) {
	fprintf(w, "Activity '%s' ended at %s\n", activity.Description, endTime(activity.EndTime))
	fprintf(w, "Duration: %s\n", duration(activity.Duration))
}

// DayEnded prints the total for the day and one line per activity
func DayEnded(w io.Writer, summary *tracker.DaySummary) {
	fprintf(w, "Working day ended at %s\n", endTime(summary.Day.EndTime))
	fprintf(w, "Total duration: %s\n", duration(summary.Day.TotalDuration))

	if len(summary.Activities) == 0 {
		return
	}

	fprintf(w, "\nActivities:\n")
	for _, activity := range summary.Activities {
		fprintf(w, "- %s: %s\n", activity.Description, duration(activity.Duration))
	}
}

// History prints the given days newest first with their activities
func History(w io.Writer, days []tracker.DaySummary, requested int) {
	if len(days) == 0 {
		fprintf(w, "No working days recorded yet.\n")
		return
	}

	fprintf(w, "=== Last %d working days ===\n", requested)

	for _, summary := range days {
		day := summary.Day

		fprintf(w, "\nDate: %s - %s\n", day.StartTime.Date(), statusLabel(day.IsOpen()))
		fprintf(w, "Start: %s - End: %s\n", day.StartTime, endTime(day.EndTime))
		fprintf(w, "Total duration: %s\n", duration(day.TotalDuration))

		if len(summary.Activities) == 0 {
			fprintf(w, "No activities recorded for this day.\n")
			continue
		}

		fprintf(w, "Activities:\n")
		for i, activity := range summary.Activities {
			fprintf(w, "  %d. %s - %s\n", i+1, activity.Description, statusLabel(activity.IsOpen()))
			fprintf(w, "     Start: %s - End: %s\n", activity.StartTime, endTime(activity.EndTime))
			fprintf(w, "     Duration: %s\n", duration(activity.Duration))
		}
	}
}

// Status prints what is currently open
func Status(w io.Writer, state tracker.State) {
	if state.Day == nil {
		fprintf(w, "- No working day open\n")
	} else {
		fprintf(w, "- Working day open since %s (%s)\n", state.Day.StartTime, tracker.FormatDuration(state.DayElapsed))
	}

	if state.Activity == nil {
		fprintf(w, "- No activity running\n")
	} else {
		fprintf(w, "- Running activity: '%s' (started %s, %s)\n",
			state.Activity.Description, state.Activity.StartTime, tracker.FormatDuration(state.ActivityElapsed))
	}
}

// Refusal prints a refused operation as a notice
func Refusal(w io.Writer, err error) {
	fprintf(w, "%s %s\n", noticeMark, capitalize(err.Error()))
}

func statusLabel(open bool) string {
	if open {
		return inProgressLabel
	}
	return completedLabel
}

func endTime(ts *models.Timestamp) string {
	if ts == nil {
		return "in progress"
	}
	return ts.String()
}

func duration(seconds *int64) string {
	if seconds == nil {
		return "N/A"
	}
	return tracker.FormatDuration(*seconds)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
