package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ttfocus/internal/config"
	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"
	"ttfocus/internal/tui"
)

type testClock struct{ now int64 }

func (c *testClock) Now() int64 { return c.now }

func (c *testClock) advance(minutes int) { c.now += int64(minutes) * 60 }

type testCLI struct {
	*cli
	out    *bytes.Buffer
	errOut *bytes.Buffer
	clock  *testClock
	dir    string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "tt.db")

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	clock := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).Unix()}
	c := &cli{
		cfg:        cfg,
		configPath: filepath.Join(dir, "config.yaml"),
		stdin:      strings.NewReader(""),
		stdout:     out,
		stderr:     errOut,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		loc:        time.UTC,
		clock:      clock,
		printer:    tui.NewPrinter(tui.PlainTheme(), i18n.New("en"), time.UTC),
	}
	t.Cleanup(c.close)
	return &testCLI{cli: c, out: out, errOut: errOut, clock: clock, dir: dir}
}

// answer 模拟终端上的用户输入
func (tc *testCLI) answer(text string) {
	tc.interactive = true
	tc.input = newBasicLineInput(strings.NewReader(text), tc.out)
}

func (tc *testCLI) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	tc.out.Reset()
	tc.errOut.Reset()
	if code := tc.execute(args); code != 0 {
		t.Fatalf("tt %s exited %d: %s", strings.Join(args, " "), code, tc.errOut.String())
	}
	return tc.out.String()
}

func (tc *testCLI) mustFail(t *testing.T, want int, args ...string) string {
	t.Helper()
	tc.out.Reset()
	tc.errOut.Reset()
	if code := tc.execute(args); code != want {
		t.Fatalf("tt %s exited %d, want %d (stdout %q)", strings.Join(args, " "), code, want, tc.out.String())
	}
	return tc.errOut.String()
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCLI_Session(t *testing.T) {
	tc := newTestCLI(t)
	assertContains(t, tc.mustRun(t, "add", "coding", "--alias", "c"), "Added task coding")
	assertContains(t, tc.mustRun(t, "tasks"), "coding", "c")

	id := focus.DateID(tc.clock.now)
	assertContains(t, tc.mustRun(t, "start", "c"), "Started event "+id, "coding")

	tc.clock.advance(20)
	assertContains(t, tc.mustRun(t, "split"), "Work so far: 20m")
	tc.clock.advance(10)
	assertContains(t, tc.mustRun(t, "pause"), "Paused.")
	tc.clock.advance(10)
	assertContains(t, tc.mustRun(t, "resume"), "Resumed.")
	tc.clock.advance(20)
	assertContains(t, tc.mustRun(t, "stop"), "Stopped event "+id, "50m")

	assertContains(t, tc.mustRun(t, "status"), id, "coding", "stopped", "50m")
	assertContains(t, tc.mustRun(t, "status", id), "pause")
	assertContains(t, tc.mustRun(t, "list"), "Last 10 events", "Total work: 50m in 1 events")
	assertContains(t, tc.mustRun(t, "list", "--day", "2024-05-01"), "2024-05-01", "50m")
	assertContains(t, tc.mustRun(t, "list", "--month", "this"), "2024-05", "in 1 events")
	assertContains(t, tc.mustRun(t, "list", "--day", "2024-05-02"), "No events.")
}

func TestCLI_Errors(t *testing.T) {
	tc := newTestCLI(t)
	assertContains(t, tc.mustFail(t, 1, "split"), "No event yet")
	assertContains(t, tc.mustFail(t, 2, "add"), "Usage: tt add")
	assertContains(t, tc.mustFail(t, 2, "stop", "now"), "Usage: tt stop")
	assertContains(t, tc.mustFail(t, 2, "bogus"), "Unknown command")
	assertContains(t, tc.mustFail(t, 1, "start", "missing"), "Not found")
	assertContains(t, tc.mustFail(t, 1, "add", "two words"), "Use letters")
	assertContains(t, tc.mustFail(t, 1, "list", "--day", "May 1"), "Malformed date")
	tc.mustFail(t, 2, "list", "-n", "0")

	tc.mustRun(t, "add", "coding")
	tc.mustRun(t, "start", "coding")
	assertContains(t, tc.mustFail(t, 1, "start", "coding"), "still in progress")
	assertContains(t, tc.mustFail(t, 1, "resume"), "not paused")
}

func TestCLI_ShortEventIsDiscarded(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "coding")
	tc.mustRun(t, "start", "coding")
	tc.clock.advance(3)
	assertContains(t, tc.mustRun(t, "stop"), "discarded")
	assertContains(t, tc.mustFail(t, 1, "status"), "No event yet")
}

func TestCLI_Notes(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "coding")
	id := focus.DateID(tc.clock.now)
	tc.mustRun(t, "start", "coding")

	assertContains(t, tc.mustRun(t, "notes", id, "deep", "work"), "Notes saved for event "+id)
	assertContains(t, tc.mustRun(t, "status"), "deep work")

	tc.mustFail(t, 2, "notes", id)
	tc.answer("reviewed PRs\n")
	assertContains(t, tc.mustRun(t, "notes", id), "Notes for "+id, "Notes saved")
	assertContains(t, tc.mustRun(t, "status"), "reviewed PRs")

	assertContains(t, tc.mustFail(t, 1, "notes", "nope", "x"), "Not found")
}

func TestCLI_DeleteConfirmation(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "coding")
	id := focus.DateID(tc.clock.now)
	tc.mustRun(t, "start", "coding")

	// 非交互且没有 --yes：不删除
	assertContains(t, tc.mustRun(t, "delete", id), "Aborted.")
	tc.mustRun(t, "status", id)

	tc.answer("n\n")
	assertContains(t, tc.mustRun(t, "delete", id), "Delete event "+id+"?", "Aborted.")

	tc.answer("y\n")
	assertContains(t, tc.mustRun(t, "delete", id), "Deleted event "+id)
	assertContains(t, tc.mustFail(t, 1, "status", id), "Not found")
}

func TestCLI_Merge(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "coding")

	first := focus.DateID(tc.clock.now)
	tc.mustRun(t, "start", "coding")
	tc.clock.advance(20)
	tc.mustRun(t, "stop")

	second := focus.DateID(tc.clock.now)
	tc.mustRun(t, "start", "coding")
	tc.clock.advance(25)
	tc.mustRun(t, "stop")

	out := tc.mustRun(t, "merge", first, second)
	assertContains(t, out, first, second, "Dry run: 2 events would become "+first, "45m")
	assertContains(t, tc.mustRun(t, "list"), "in 2 events")

	tc.answer("n\n")
	assertContains(t, tc.mustRun(t, "merge", first, second), "Aborted.")
	tc.interactive = false

	assertContains(t, tc.mustRun(t, "merge", second, first, "--yes"), "Merged 2 events into "+first)
	assertContains(t, tc.mustRun(t, "list"), "Total work: 45m in 1 events")
	assertContains(t, tc.mustFail(t, 1, "merge", first), "Cannot merge")
}

func TestCLI_ConfigLangAndDB(t *testing.T) {
	tc := newTestCLI(t)
	assertContains(t, tc.mustRun(t, "config"), "split_min", "5 min", "60 min", "db_path", tc.cfg.DBPath)

	assertContains(t, tc.mustRun(t, "config", "set", "SPLIT_MIN", "10"), "split_min set to 10 min.")
	assertContains(t, tc.mustRun(t, "config"), "10 min")
	tc.mustFail(t, 2, "config", "set", "split_min", "ten")
	assertContains(t, tc.mustFail(t, 1, "config", "set", "bogus", "3"), "unknown config key")
	assertContains(t, tc.mustFail(t, 1, "config", "set", "pause_max", "0"), "must be positive")

	assertContains(t, tc.mustRun(t, "lang", "zh_CN.UTF-8"), "zh-CN")
	assertContains(t, tc.mustFail(t, 1, "lang", "fr"), "unsupported lang")

	newDB := filepath.Join(tc.dir, "other", "focus.db")
	assertContains(t, tc.mustRun(t, "db", newDB), newDB)

	data, err := os.ReadFile(tc.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	assertContains(t, string(data), "lang: zh-CN", "db_path: "+newDB)
}

func TestParseArgs_Interleaved(t *testing.T) {
	tc := newTestCLI(t)
	fs := tc.flags("merge")
	yes := fs.Bool("yes", false, "")
	pos, err := parseArgs(fs, []string{"a", "--yes", "b"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !*yes || strings.Join(pos, ",") != "a,b" {
		t.Fatalf("yes=%v pos=%v", *yes, pos)
	}
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := askYesNo(newBasicLineInput(strings.NewReader(tt.input), io.Discard), "? ")
		if err != nil {
			t.Fatalf("askYesNo(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("askYesNo(%q)=%v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRun_VersionAndHelp(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	var out, errOut bytes.Buffer
	if code := run([]string{"--config", configPath, "version"}, strings.NewReader(""), &out, &errOut); code != 0 {
		t.Fatalf("version exited %d: %s", code, errOut.String())
	}
	if strings.TrimSpace(out.String()) != "tt "+version {
		t.Fatalf("version output=%q", out.String())
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file should be created on first run: %v", err)
	}

	out.Reset()
	if code := run([]string{"--config", configPath, "help"}, strings.NewReader(""), &out, &errOut); code != 0 {
		t.Fatalf("help exited %d: %s", code, errOut.String())
	}
	assertContains(t, out.String(), "tt merge", "tt watch")
}
