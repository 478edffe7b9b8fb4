package tracker

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
)

type fakeClock struct{ now int64 }

func (c *fakeClock) Now() int64 { return c.now }
func (c *fakeClock) advance(minutes int64) { c.now += minutes * 60 }

func newTestTracker(t *testing.T) (*Tracker, *fakeClock, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "tt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).Unix()}
	tr := New(Options{
		Store:    store,
		Clock:    clock,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Location: time.UTC,
	})
	_, err = tr.AddTask("coding", "c")
	require.NoError(t, err)
	return tr, clock, store
}

func TestFullSession(t *testing.T) {
	tr, clock, store := newTestTracker(t)

	e, err := tr.Start("c")
	require.NoError(t, err)
	start := e.Started

	clock.advance(10)
	res, err := tr.Split()
	require.NoError(t, err)
	assert.Equal(t, focus.Keep, res.Verdict)

	clock.advance(10)
	_, err = tr.Pause()
	require.NoError(t, err)

	clock.advance(10)
	_, err = tr.Resume()
	require.NoError(t, err)

	clock.advance(10)
	res, err = tr.Stop()
	require.NoError(t, err)
	assert.False(t, res.Discarded)

	saved, err := store.GetEventByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, focus.StatusStopped, saved.Status)
	assert.Equal(t, int64(30*60), saved.Work)
	require.Len(t, saved.Laps, 4)
	assert.Equal(t, start, saved.Laps[0].Start)
	for i := 1; i < len(saved.Laps); i++ {
		assert.Equal(t, saved.Laps[i-1].End(), saved.Laps[i].Start, "lap %d", i)
	}

	p, ok := focus.Productivity(saved)
	require.True(t, ok)
	assert.InDelta(t, 0.75, p, 1e-9)
}

func TestStartRequiresStoppedEvent(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	_, err := tr.Start("nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = tr.Start("coding")
	require.NoError(t, err)
	_, err = tr.Start("coding")
	assert.ErrorIs(t, err, ErrEventInProgress)
}

func TestShortSplitIsCarried(t *testing.T) {
	tr, clock, store := newTestTracker(t)
	e, err := tr.Start("coding")
	require.NoError(t, err)

	clock.advance(5)
	res, err := tr.Split()
	require.NoError(t, err)
	assert.Equal(t, focus.DiscardCarry, res.Verdict)

	saved, err := store.GetEventByID(e.ID)
	require.NoError(t, err)
	require.Len(t, saved.Laps, 1)
	assert.True(t, saved.Laps[0].Open())
	assert.Zero(t, saved.Work)
}

func TestResumeAfterLongPauseStartsReplacement(t *testing.T) {
	tr, clock, store := newTestTracker(t)
	e, err := tr.Start("coding")
	require.NoError(t, err)

	clock.advance(20)
	_, err = tr.Pause()
	require.NoError(t, err)

	clock.advance(60)
	res, err := tr.Resume()
	require.NoError(t, err)
	assert.Equal(t, focus.Terminate, res.Verdict)
	require.NotNil(t, res.Replacement)
	assert.Equal(t, e.TaskID, res.Replacement.TaskID)
	assert.Equal(t, clock.now, res.Replacement.Started)

	old, err := store.GetEventByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, focus.StatusStopped, old.Status)
	assert.Equal(t, int64(20*60), old.Work)
	require.Len(t, old.Laps, 1)

	last, err := tr.Event("")
	require.NoError(t, err)
	assert.Equal(t, res.Replacement.ID, last.ID)
	assert.Equal(t, focus.StatusRunning, last.Status)
}

func TestShortEventIsDiscardedOnStop(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	_, err := tr.Start("coding")
	require.NoError(t, err)

	clock.advance(3)
	res, err := tr.Stop()
	require.NoError(t, err)
	assert.True(t, res.Discarded)

	_, err = tr.Event("")
	assert.ErrorIs(t, err, ErrNoActiveEvent)
}

func TestWrongStatusErrors(t *testing.T) {
	tr, clock, _ := newTestTracker(t)

	_, err := tr.Split()
	assert.ErrorIs(t, err, ErrNoActiveEvent)

	_, err = tr.Start("coding")
	require.NoError(t, err)
	_, err = tr.Resume()
	assert.ErrorIs(t, err, ErrNotPausing)

	clock.advance(10)
	_, err = tr.Pause()
	require.NoError(t, err)
	_, err = tr.Pause()
	assert.ErrorIs(t, err, ErrNotRunning)
	_, err = tr.Split()
	assert.ErrorIs(t, err, ErrNotRunning)

	clock.advance(10)
	_, err = tr.Stop()
	require.NoError(t, err)
	_, err = tr.Stop()
	assert.ErrorIs(t, err, ErrAlreadyStopped)
	_, err = tr.Resume()
	assert.ErrorIs(t, err, ErrAlreadyStopped)
}

func runEvent(t *testing.T, tr *Tracker, clock *fakeClock, workMin int64) *focus.Event {
	t.Helper()
	e, err := tr.Start("coding")
	require.NoError(t, err)
	clock.advance(workMin)
	_, err = tr.Stop()
	require.NoError(t, err)
	return e
}

func TestMergeDryRunAndApply(t *testing.T) {
	tr, clock, store := newTestTracker(t)
	a := runEvent(t, tr, clock, 30)
	require.NoError(t, tr.SetNotes(a.ID, "first"))
	clock.advance(5)
	b := runEvent(t, tr, clock, 20)

	plan, err := tr.Merge([]string{b.ID, a.ID}, false)
	require.NoError(t, err)
	assert.Equal(t, a.ID, plan.Merged.ID)
	assert.Equal(t, int64(50*60), plan.Merged.Work)
	assert.Equal(t, "first", plan.Merged.Notes)

	_, err = store.GetEventByID(b.ID)
	require.NoError(t, err, "dry run must not delete")

	_, err = tr.Merge([]string{a.ID, b.ID}, true)
	require.NoError(t, err)
	_, err = store.GetEventByID(b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = tr.Merge([]string{a.ID}, true)
	assert.ErrorIs(t, err, focus.ErrMergeValidation)
}

func TestSpans(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	runEvent(t, tr, clock, 30)

	today, err := tr.DaySpan("")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", today.Label)
	events, err := tr.InSpan(today)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	other, err := tr.DaySpan("2024-05-02")
	require.NoError(t, err)
	events, err = tr.InSpan(other)
	require.NoError(t, err)
	assert.Empty(t, events)

	month, err := tr.MonthSpan("2024-05")
	require.NoError(t, err)
	assert.Equal(t, int64(31*24*3600), month.End-month.Start)

	_, err = tr.DaySpan("2024-13-01")
	assert.ErrorIs(t, err, ErrBadDate)
	_, err = tr.MonthSpan("May")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestTasksAndThresholds(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	_, err := tr.AddTask("coding", "")
	assert.ErrorIs(t, err, storage.ErrTaskExists)
	_, err = tr.AddTask("bad name", "")
	assert.ErrorIs(t, err, focus.ErrInvalidTaskName)

	require.NoError(t, tr.RenameTask("coding", "hacking"))
	task, err := tr.ResolveTask("c")
	require.NoError(t, err)
	assert.Equal(t, "hacking", task.Name)
	assert.ErrorIs(t, tr.SetAlias("hacking", ""), focus.ErrInvalidTaskName)

	cfg, err := tr.SetThreshold("PAUSE_MAX", 90)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.PauseMax)
	got, err := tr.Thresholds()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = tr.SetThreshold("split_min", 0)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	e := runEvent(t, tr, clock, 30)

	require.NoError(t, tr.Delete(e.ID))
	assert.ErrorIs(t, tr.Delete(e.ID), storage.ErrNotFound)
}
