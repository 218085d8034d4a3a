package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/worklog/internal/db"
	"github.com/balkashynov/worklog/internal/models"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func openStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "worklog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func newTestTracker(t *testing.T) (*Tracker, *db.Store, *fakeClock) {
	t.Helper()

	store := openStore(t)
	clock := newFakeClock()
	tr, err := New(store, WithClock(clock.Now))
	require.NoError(t, err)

	return tr, store, clock
}

func TestStartDayTwiceIsRefused(t *testing.T) {
	tr, store, _ := newTestTracker(t)

	day, err := tr.StartDay()
	require.NoError(t, err)
	require.True(t, day.IsOpen())

	_, err = tr.StartDay()
	require.ErrorIs(t, err, ErrDayAlreadyOpen)
	require.True(t, IsRefusal(err))

	n, err := store.CountOpenWorkingDays()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	state := tr.Status()
	require.NotNil(t, state.Day)
	require.Equal(t, day.ID, state.Day.ID)
}

func TestStartActivityWithoutDayIsRefused(t *testing.T) {
	tr, store, _ := newTestTracker(t)

	_, err := tr.StartActivity("coding")
	require.ErrorIs(t, err, ErrNoOpenDay)

	open, err := store.GetOpenActivity()
	require.NoError(t, err)
	require.Nil(t, open)

	days, err := store.RecentWorkingDays(10)
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestStartActivityWhileOneRunsIsRefused(t *testing.T) {
	tr, store, _ := newTestTracker(t)

	day, err := tr.StartDay()
	require.NoError(t, err)
	first, err := tr.StartActivity("first")
	require.NoError(t, err)

	_, err = tr.StartActivity("second")
	require.ErrorIs(t, err, ErrActivityAlreadyOpen)

	activities, err := store.ListActivities(day.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, first.ID, activities[0].ID)
}

func TestStartActivityAcceptsEmptyDescription(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	_, err := tr.StartDay()
	require.NoError(t, err)

	activity, err := tr.StartActivity("")
	require.NoError(t, err)
	require.Equal(t, "", activity.Description)
}

func TestEndActivityWithoutActivityIsRefused(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	_, err := tr.EndActivity()
	require.ErrorIs(t, err, ErrNoOpenActivity)

	_, err = tr.StartDay()
	require.NoError(t, err)

	_, err = tr.EndActivity()
	require.ErrorIs(t, err, ErrNoOpenActivity)
}

func TestEndActivityDurationIsFloorAndFixed(t *testing.T) {
	tr, store, clock := newTestTracker(t)

	_, err := tr.StartDay()
	require.NoError(t, err)
	_, err = tr.StartActivity("review")
	require.NoError(t, err)

	clock.Advance(90*time.Second + 999*time.Millisecond)

	closed, err := tr.EndActivity()
	require.NoError(t, err)
	require.NotNil(t, closed.Duration)
	require.Equal(t, int64(90), *closed.Duration)
	require.Equal(t, "review", closed.Description)

	// Later operations never touch the stored duration
	clock.Advance(time.Hour)
	_, err = tr.StartActivity("next")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = tr.EndActivity()
	require.NoError(t, err)
	_, err = tr.EndDay()
	require.NoError(t, err)

	reloaded, err := store.ListActivities(closed.WorkingDayID)
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	require.Equal(t, int64(90), *reloaded[0].Duration)
}

func TestEndDayWithOpenActivityIsRefused(t *testing.T) {
	tr, store, clock := newTestTracker(t)

	day, err := tr.StartDay()
	require.NoError(t, err)
	activity, err := tr.StartActivity("meeting")
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	_, err = tr.EndDay()
	require.ErrorIs(t, err, ErrActivityStillOpen)

	openDay, err := store.GetOpenWorkingDay()
	require.NoError(t, err)
	require.NotNil(t, openDay)
	require.Equal(t, day.ID, openDay.ID)

	openActivity, err := store.GetOpenActivity()
	require.NoError(t, err)
	require.NotNil(t, openActivity)
	require.Equal(t, activity.ID, openActivity.ID)

	state := tr.Status()
	require.NotNil(t, state.Day)
	require.NotNil(t, state.Activity)
}

func TestEndDayWithoutDayIsRefused(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	_, err := tr.EndDay()
	require.ErrorIs(t, err, ErrNoOpenDay)
}

func TestEndToEndOneHourActivity(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	_, err := tr.StartDay()
	require.NoError(t, err)
	_, err = tr.StartActivity("write spec")
	require.NoError(t, err)

	clock.Advance(time.Hour)

	activity, err := tr.EndActivity()
	require.NoError(t, err)
	require.Equal(t, int64(3600), *activity.Duration)
	require.Equal(t, "01:00:00", FormatDuration(*activity.Duration))

	summary, err := tr.EndDay()
	require.NoError(t, err)
	require.Equal(t, int64(3600), *summary.Day.TotalDuration)
	require.Len(t, summary.Activities, 1)
	require.Equal(t, "write spec", summary.Activities[0].Description)
	require.Equal(t, int64(3600), *summary.Activities[0].Duration)

	state := tr.Status()
	require.Nil(t, state.Day)
	require.Nil(t, state.Activity)
}

func TestEndDayListsActivitiesInStartOrder(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	_, err := tr.StartDay()
	require.NoError(t, err)

	for _, desc := range []string{"a", "b", "c"} {
		_, err = tr.StartActivity(desc)
		require.NoError(t, err)
		clock.Advance(5 * time.Minute)
		_, err = tr.EndActivity()
		require.NoError(t, err)
	}

	summary, err := tr.EndDay()
	require.NoError(t, err)
	require.Equal(t, int64(15*60), *summary.Day.TotalDuration)
	require.Len(t, summary.Activities, 3)
	for i, desc := range []string{"a", "b", "c"} {
		require.Equal(t, desc, summary.Activities[i].Description)
		require.Equal(t, int64(300), *summary.Activities[i].Duration)
	}
}

func runDays(t *testing.T, tr *Tracker, clock *fakeClock, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		_, err := tr.StartDay()
		require.NoError(t, err)
		for _, desc := range []string{"standup", "coding"} {
			_, err = tr.StartActivity(desc)
			require.NoError(t, err)
			clock.Advance(30 * time.Minute)
			_, err = tr.EndActivity()
			require.NoError(t, err)
		}
		_, err = tr.EndDay()
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}
}

func TestHistoryLimitAndOrder(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	runDays(t, tr, clock, 5)

	history, err := tr.History(3)
	require.NoError(t, err)
	require.Len(t, history, 3)

	for i := 1; i < len(history); i++ {
		require.True(t, history[i-1].Day.StartTime.After(history[i].Day.StartTime.Time))
	}
	for _, summary := range history {
		require.Len(t, summary.Activities, 2)
		require.Equal(t, "standup", summary.Activities[0].Description)
		require.Equal(t, "coding", summary.Activities[1].Description)
		require.False(t, summary.Activities[1].StartTime.Before(summary.Activities[0].StartTime.Time))
	}
}

func TestHistoryDefaultsToSeven(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	runDays(t, tr, clock, 9)

	seven, err := tr.History(7)
	require.NoError(t, err)
	require.Len(t, seven, 7)

	zero, err := tr.History(0)
	require.NoError(t, err)
	require.Equal(t, seven, zero)

	negative, err := tr.History(-4)
	require.NoError(t, err)
	require.Equal(t, seven, negative)

	parsed, err := tr.History(ParseHistoryCount("abc"))
	require.NoError(t, err)
	require.Equal(t, seven, parsed)
}

func TestHistoryShowsOpenDay(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	runDays(t, tr, clock, 1)

	_, err := tr.StartDay()
	require.NoError(t, err)
	_, err = tr.StartActivity("in flight")
	require.NoError(t, err)

	history, err := tr.History(5)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.True(t, history[0].Day.IsOpen())
	require.Nil(t, history[0].Day.TotalDuration)
	require.Len(t, history[0].Activities, 1)
	require.True(t, history[0].Activities[0].IsOpen())
	require.False(t, history[1].Day.IsOpen())
}

func TestWithHistoryDays(t *testing.T) {
	store := openStore(t)
	clock := newFakeClock()
	tr, err := New(store, WithClock(clock.Now), WithHistoryDays(2))
	require.NoError(t, err)
	require.Equal(t, 2, tr.HistoryDays())

	runDays(t, tr, clock, 4)

	history, err := tr.History(0)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestNewResumesOpenDayAndActivity(t *testing.T) {
	store := openStore(t)
	clock := newFakeClock()

	first, err := New(store, WithClock(clock.Now))
	require.NoError(t, err)
	day, err := first.StartDay()
	require.NoError(t, err)
	activity, err := first.StartActivity("carried over")
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)

	second, err := New(store, WithClock(clock.Now))
	require.NoError(t, err)

	state := second.Status()
	require.NotNil(t, state.Day)
	require.Equal(t, day.ID, state.Day.ID)
	require.NotNil(t, state.Activity)
	require.Equal(t, activity.ID, state.Activity.ID)
	require.Equal(t, int64(20*60), state.ActivityElapsed)

	_, err = second.StartDay()
	require.ErrorIs(t, err, ErrDayAlreadyOpen)

	closed, err := second.EndActivity()
	require.NoError(t, err)
	require.Equal(t, int64(20*60), *closed.Duration)
}

func TestNegativeElapsedIsClamped(t *testing.T) {
	tr, _, clock := newTestTracker(t)

	_, err := tr.StartDay()
	require.NoError(t, err)
	_, err = tr.StartActivity("time travel")
	require.NoError(t, err)

	clock.Advance(-time.Minute)

	closed, err := tr.EndActivity()
	require.NoError(t, err)
	require.Equal(t, int64(0), *closed.Duration)
}

type failingStore struct {
	Store
}

var errDisk = errors.New("disk I/O error")

func (failingStore) GetOpenWorkingDay() (*models.WorkingDay, error) { return nil, nil }

func (failingStore) CreateWorkingDay(models.Timestamp) (*models.WorkingDay, error) {
	return nil, errDisk
}

func TestStorageErrorsAreNotRefusals(t *testing.T) {
	tr, err := New(failingStore{})
	require.NoError(t, err)

	_, err = tr.StartDay()
	require.ErrorIs(t, err, errDisk)
	require.False(t, IsRefusal(err))
	require.Nil(t, tr.Status().Day)
}

func TestStateString(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	require.Equal(t, "no working day open", tr.Status().String())

	_, err := tr.StartDay()
	require.NoError(t, err)
	clock.Advance(65 * time.Second)
	require.Contains(t, tr.Status().String(), "open for 00:01:05")

	_, err = tr.StartActivity("docs")
	require.NoError(t, err)
	clock.Advance(3 * time.Second)
	require.Contains(t, tr.Status().String(), `activity "docs" running for 00:00:03`)
}

func TestHistoryCountUsesConfiguredDefault(t *testing.T) {
	store := openStore(t)
	tr, err := New(store, WithHistoryDays(14))
	require.NoError(t, err)

	require.Equal(t, 14, tr.HistoryCount(""))
	require.Equal(t, 14, tr.HistoryCount("abc"))
	require.Equal(t, 14, tr.HistoryCount("0"))
	require.Equal(t, 3, tr.HistoryCount("3"))
}
