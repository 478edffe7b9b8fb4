package tui

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"
	"ttfocus/internal/storage"
	"ttfocus/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

type testClock struct{ now int64 }

func (c *testClock) Now() int64 { return c.now }

func newTestApp(t *testing.T) (App, *tracker.Tracker, *testClock) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "watch.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).Unix()}
	tr := tracker.New(tracker.Options{
		Store:    store,
		Clock:    clock,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Location: time.UTC,
	})
	if _, err := tr.AddTask("coding", ""); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	printer := NewPrinter(PlainTheme(), i18n.New("en"), time.UTC)
	return NewApp(tr, printer), tr, clock
}

func press(t *testing.T, m tea.Model, r rune) App {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(App)
}

func TestApp_IdleView(t *testing.T) {
	app, _, _ := newTestApp(t)
	if app.event != nil {
		t.Fatalf("expected no event, got %+v", app.event)
	}
	if !strings.Contains(app.View(), "No active event") {
		t.Fatalf("idle view missing hint:\n%s", app.View())
	}
	// 无事件时快捷键不可用 / bindings disabled without an event
	updated := press(t, app, 's')
	if updated.lastError != "" || updated.message != "" {
		t.Fatalf("split should be ignored when idle: %q %q", updated.message, updated.lastError)
	}
}

func TestApp_DrivesTransitions(t *testing.T) {
	app, tr, clock := newTestApp(t)
	if _, err := tr.Start("coding"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m, _ := app.Update(tickMsg(time.Now()))
	app = m.(App)

	clock.now += 10 * 60
	app = press(t, app, 's')
	if !strings.Contains(app.message, "Split") {
		t.Fatalf("unexpected split message: %q", app.message)
	}

	clock.now += 10 * 60
	app = press(t, app, 'p')
	if app.event == nil || app.event.Status != focus.StatusPausing {
		t.Fatalf("expected pausing event, got %+v", app.event)
	}
	if !app.keys.Resume.Enabled() || app.keys.Pause.Enabled() {
		t.Fatalf("key bindings not synced to pausing status")
	}

	clock.now += 10 * 60
	app = press(t, app, 'r')
	if app.event.Status != focus.StatusRunning {
		t.Fatalf("expected running after resume, got %v", app.event.Status)
	}

	clock.now += 10 * 60
	app = press(t, app, 'x')
	if app.event.Status != focus.StatusStopped {
		t.Fatalf("expected stopped, got %v", app.event.Status)
	}
	if !strings.Contains(app.message, "30m") {
		t.Fatalf("stop message should report 30m of work: %q", app.message)
	}
	if !strings.Contains(app.View(), "stopped") {
		t.Fatalf("view should show stopped status:\n%s", app.View())
	}
}

func TestApp_Quit(t *testing.T) {
	app, _, _ := newTestApp(t)
	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.(App).quitting || m.(App).View() != "" {
		t.Fatal("expected quitting state with empty view")
	}
}
