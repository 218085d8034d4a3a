package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/worklog/internal/config"
	"github.com/balkashynov/worklog/internal/logger"
	"github.com/balkashynov/worklog/internal/models"
)

// Store is the persistence the tracker needs
type Store interface {
	CreateWorkingDay(start models.Timestamp) (*models.WorkingDay, error)
	CloseWorkingDay(id uint, end models.Timestamp, totalSeconds int64) (*models.WorkingDay, error)
	GetOpenWorkingDay() (*models.WorkingDay, error)
	CountOpenWorkingDays() (int64, error)
	RecentWorkingDays(limit int) ([]models.WorkingDay, error)

	CreateActivity(dayID uint, description string, start models.Timestamp) (*models.Activity, error)
	CloseActivity(id uint, end models.Timestamp, seconds int64) (*models.Activity, error)
	GetOpenActivity() (*models.Activity, error)
	ListActivities(dayID uint) ([]models.Activity, error)
}

// Tracker drives the working day / activity lifecycle
type Tracker struct {
	store Store
	now   func() time.Time

	historyDays int

	day      *models.WorkingDay
	activity *models.Activity
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithHistoryDays sets the default history length
func WithHistoryDays(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.historyDays = n
		}
	}
}

// DaySummary is a working day together with its activities in start order
type DaySummary struct {
	Day        models.WorkingDay
	Activities []models.Activity
}

// State is a snapshot of what is currently open
type State struct {
	Day      *models.WorkingDay
	Activity *models.Activity

	DayElapsed      int64
	ActivityElapsed int64
}

// New creates a tracker and picks up any day or activity left open by an
// earlier run
func New(store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:       store,
		now:         time.Now,
		historyDays: config.DefaultHistoryDays,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.recover(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tracker) recover() error {
	day, err := t.store.GetOpenWorkingDay()
	if err != nil {
		return err
	}
	if day == nil {
		return nil
	}

	if n, err := t.store.CountOpenWorkingDays(); err == nil && n > 1 {
		logger.Warn("several working days were never ended, resuming the latest", "open", n, "day", day.ID)
	}
	t.day = day
	logger.Debug("resumed working day", "day", day.ID, "start", day.StartTime.String())

	activity, err := t.store.GetOpenActivity()
	if err != nil {
		return err
	}
	if activity == nil {
		return nil
	}
	if activity.WorkingDayID != day.ID {
		logger.Warn("ignoring open activity of a closed working day", "activity", activity.ID, "day", activity.WorkingDayID)
		return nil
	}
	t.activity = activity
	logger.Debug("resumed activity", "activity", activity.ID, "description", activity.Description)

	return nil
}

// StartDay opens a new working day
func (t *Tracker) StartDay() (*models.WorkingDay, error) {
	if t.day != nil {
		return nil, ErrDayAlreadyOpen
	}

	day, err := t.store.CreateWorkingDay(models.NewTimestamp(t.now()))
	if err != nil {
		return nil, err
	}
	t.day = day

	logger.Info("working day started", "day", day.ID, "start", day.StartTime.String())
	return day, nil
}

// StartActivity opens an activity under the current working day. The
// description is stored as given, empty included.
func (t *Tracker) StartActivity(description string) (*models.Activity, error) {
	if t.day == nil {
		return nil, ErrNoOpenDay
	}
	if t.activity != nil {
		return nil, ErrActivityAlreadyOpen
	}

	activity, err := t.store.CreateActivity(t.day.ID, description, models.NewTimestamp(t.now()))
	if err != nil {
		return nil, err
	}
	t.activity = activity

	logger.Info("activity started", "activity", activity.ID, "day", t.day.ID, "description", description)
	return activity, nil
}

// EndActivity closes the running activity and returns it with its duration set
func (t *Tracker) EndActivity() (*models.Activity, error) {
	if t.activity == nil {
		return nil, ErrNoOpenActivity
	}

	end := t.now()
	seconds := elapsed(t.activity.StartTime, end)

	closed, err := t.store.CloseActivity(t.activity.ID, models.NewTimestamp(end), seconds)
	if err != nil {
		return nil, err
	}
	t.activity = nil

	logger.Info("activity ended", "activity", closed.ID, "duration", FormatDuration(seconds))
	return closed, nil
}

// EndDay closes the current working day and summarises its activities
func (t *Tracker) EndDay() (*DaySummary, error) {
	if t.day == nil {
		return nil, ErrNoOpenDay
	}
	if t.activity != nil {
		return nil, ErrActivityStillOpen
	}

	end := t.now()
	seconds := elapsed(t.day.StartTime, end)

	closed, err := t.store.CloseWorkingDay(t.day.ID, models.NewTimestamp(end), seconds)
	if err != nil {
		return nil, err
	}
	t.day = nil

	activities, err := t.store.ListActivities(closed.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("working day ended", "day", closed.ID, "duration", FormatDuration(seconds), "activities", len(activities))
	return &DaySummary{Day: *closed, Activities: activities}, nil
}

// History returns the latest count working days, newest first. A
// non-positive count means the configured default.
func (t *Tracker) History(count int) ([]DaySummary, error) {
	if count <= 0 {
		count = t.historyDays
	}

	days, err := t.store.RecentWorkingDays(count)
	if err != nil {
		return nil, err
	}

	summaries := make([]DaySummary, 0, len(days))
	for _, day := range days {
		activities := day.Activities
		day.Activities = nil
		summaries = append(summaries, DaySummary{Day: day, Activities: activities})
	}

	return summaries, nil
}

// HistoryDays is the count History uses for a non-positive argument
func (t *Tracker) HistoryDays() int {
	return t.historyDays
}

// HistoryCount is ParseHistoryCount with the tracker's own default. Only plain
// digits count, so signs and decimals fall back too.
func (t *Tracker) HistoryCount(input string) int {
	input = strings.TrimSpace(input)
	if input == "" || strings.TrimLeft(input, "0123456789") != "" {
		return t.historyDays
	}
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return t.historyDays
	}
	return n
}

// Status reports what is currently open and for how long
func (t *Tracker) Status() State {
	now := t.now()
	state := State{}

	if t.day != nil {
		day := *t.day
		state.Day = &day
		state.DayElapsed = elapsed(day.StartTime, now)
	}
	if t.activity != nil {
		activity := *t.activity
		state.Activity = &activity
		state.ActivityElapsed = elapsed(activity.StartTime, now)
	}

	return state
}

// elapsed is end - start in whole seconds, truncated toward zero and clamped
// at zero when the wall clock went backwards
func elapsed(start models.Timestamp, end time.Time) int64 {
	seconds := int64(end.Sub(start.Time) / time.Second)
	if seconds < 0 {
		logger.Warn("clock moved backwards, clamping duration to zero", "start", start.String(), "end", end.Format(models.TimestampLayout))
		return 0
	}
	return seconds
}

// String is a one-line description of the state, handy for logs
func (s State) String() string {
	switch {
	case s.Day == nil:
		return "no working day open"
	case s.Activity == nil:
		return fmt.Sprintf("working day #%d open for %s", s.Day.ID, FormatDuration(s.DayElapsed))
	default:
		return fmt.Sprintf("working day #%d open, activity %q running for %s", s.Day.ID, s.Activity.Description, FormatDuration(s.ActivityElapsed))
	}
}
