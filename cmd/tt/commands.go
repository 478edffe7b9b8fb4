package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ttfocus/internal/bootstrap"
	"ttfocus/internal/config"
	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"
	"ttfocus/internal/storage"
	"ttfocus/internal/tracker"
	"ttfocus/internal/tui"

	"github.com/chzyer/readline"
)

// cli 一次命令调用的上下文；数据库在第一次需要时才打开
// cli carries one invocation. The database is opened on first use.
type cli struct {
	cfg        config.Config
	configPath string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	loc     *time.Location
	clock   focus.Clock
	printer tui.Printer

	interactive bool
	input       lineInput

	store *storage.SQLiteStore
	tr    *tracker.Tracker
}

// usageError 参数不对时返回，打印用法并以 2 退出
type usageError struct{ usage string }

func (e usageError) Error() string { return "usage: " + e.usage }

func (c *cli) execute(args []string) int {
	if len(args) == 0 {
		args = []string{"help"}
	}
	name, rest := strings.ToLower(args[0]), args[1:]

	var err error
	switch name {
	case "add":
		err = c.cmdAdd(rest)
	case "tasks":
		err = c.cmdTasks(rest)
	case "alias":
		err = c.cmdAlias(rest)
	case "rename":
		err = c.cmdRename(rest)
	case "start":
		err = c.cmdStart(rest)
	case "split":
		err = c.cmdTransition(focus.OpSplit, rest)
	case "pause":
		err = c.cmdTransition(focus.OpPause, rest)
	case "resume":
		err = c.cmdTransition(focus.OpResume, rest)
	case "stop":
		err = c.cmdTransition(focus.OpStop, rest)
	case "status":
		err = c.cmdStatus(rest)
	case "list", "ls":
		err = c.cmdList(rest)
	case "notes":
		err = c.cmdNotes(rest)
	case "delete", "rm":
		err = c.cmdDelete(rest)
	case "merge":
		err = c.cmdMerge(rest)
	case "config":
		err = c.cmdConfig(rest)
	case "lang":
		err = c.cmdLang(rest)
	case "db":
		err = c.cmdDB(rest)
	case "watch":
		err = c.cmdWatch(rest)
	case "help", "-h", "--help":
		err = c.cmdHelp(rest)
	case "version", "--version":
		fmt.Fprintf(c.stdout, "tt %s\n", version)
	default:
		fmt.Fprintln(c.stderr, c.printer.Theme.ErrorStyle.Render(c.t("error.unknown_command", args[0])))
		return 2
	}
	if err != nil {
		return c.fail(err)
	}
	return 0
}

func (c *cli) fail(err error) int {
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(c.stderr, c.printer.Theme.ErrorStyle.Render(c.t("error.usage", usage.usage)))
		return 2
	}
	c.logger.Debug("command failed", "err", err)
	fmt.Fprintln(c.stderr, c.printer.Error(err))
	return 1
}

func (c *cli) close() {
	if c.input != nil {
		_ = c.input.Close()
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Warn("close database", "err", err)
		}
	}
}

// open 打开数据库并创建 tracker（每次调用只打开一次）
func (c *cli) open() (*tracker.Tracker, error) {
	if c.tr != nil {
		return c.tr, nil
	}
	res, err := bootstrap.Build(c.cfg, bootstrap.Options{
		Clock:    c.clock,
		Logger:   c.logger,
		Location: c.loc,
	})
	if err != nil {
		return nil, err
	}
	c.store, c.tr = res.Store, res.Tracker
	return c.tr, nil
}

func (c *cli) t(key string, args ...any) string {
	return c.printer.Locale.T(key, args...)
}

func (c *cli) println(s string) {
	fmt.Fprintln(c.stdout, s)
}

func (c *cli) success(key string, args ...any) {
	c.println(c.printer.Theme.SuccessStyle.Render(c.t(key, args...)))
}

func (c *cli) lineInput() lineInput {
	if c.input == nil {
		c.input = newLineInput(c.stdin, c.stdout)
	}
	return c.input
}

// confirm 非交互时一律视为否
// confirm asks a yes/no question; without a terminal the answer is no.
func (c *cli) confirm(prompt string) (bool, error) {
	if !c.interactive {
		return false, nil
	}
	return askYesNo(c.lineInput(), prompt)
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tt "+name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parseArgs 允许选项出现在位置参数之后（tt add coding --alias c）
// parseArgs lets flags follow positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// taskOf 任务已被删除或损坏时退回显示 id
func taskOf(tr *tracker.Tracker, e *focus.Event) focus.Task {
	task, err := tr.TaskOf(e)
	if err != nil {
		return focus.Task{ID: e.TaskID, Name: e.TaskID}
	}
	return task
}

// --- Tasks ---

func (c *cli) cmdAdd(args []string) error {
	const usage = "tt add NAME [--alias A]"
	fs := c.flags("add")
	alias := fs.String("alias", "", "Short alias for the task")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 1 {
		return usageError{usage}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	task, err := tr.AddTask(pos[0], *alias)
	if err != nil {
		return err
	}
	c.success("task.added", task.Name, task.ID)
	return nil
}

func (c *cli) cmdTasks(args []string) error {
	if len(args) != 0 {
		return usageError{"tt tasks"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	tasks, err := tr.Tasks()
	if err != nil {
		return err
	}
	c.println(c.printer.Tasks(tasks))
	return nil
}

func (c *cli) cmdAlias(args []string) error {
	if len(args) != 2 {
		return usageError{"tt alias NAME ALIAS"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	if err := tr.SetAlias(args[0], args[1]); err != nil {
		return err
	}
	c.success("task.alias_set", args[0], args[1])
	return nil
}

func (c *cli) cmdRename(args []string) error {
	if len(args) != 2 {
		return usageError{"tt rename OLD NEW"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	if err := tr.RenameTask(args[0], args[1]); err != nil {
		return err
	}
	c.success("task.renamed", args[0], args[1])
	return nil
}

// --- Events ---

func (c *cli) cmdStart(args []string) error {
	if len(args) != 1 {
		return usageError{"tt start TASK"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	e, err := tr.Start(args[0])
	if err != nil {
		return err
	}
	c.success("event.started", e.ID, taskOf(tr, e).Name)
	return nil
}

func (c *cli) cmdTransition(op focus.Op, args []string) error {
	if len(args) != 0 {
		return usageError{"tt " + op.String()}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	var fn func() (tracker.Result, error)
	switch op {
	case focus.OpSplit:
		fn = tr.Split
	case focus.OpPause:
		fn = tr.Pause
	case focus.OpResume:
		fn = tr.Resume
	default:
		fn = tr.Stop
	}
	res, err := fn()
	if err != nil {
		return err
	}
	cfg, err := tr.Thresholds()
	if err != nil {
		return err
	}
	c.println(c.printer.Outcome(op, res, cfg))
	return nil
}

func (c *cli) cmdStatus(args []string) error {
	if len(args) > 1 {
		return usageError{"tt status [ID]"}
	}
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	e, err := tr.Event(id)
	if err != nil {
		return err
	}
	c.println(c.printer.Event(e, taskOf(tr, e), tr.Now()))
	return nil
}

func (c *cli) cmdList(args []string) error {
	const usage = "tt list [-n N | --day YYYY-MM-DD|today | --month YYYY-MM|this]"
	fs := c.flags("list")
	n := fs.Int("n", 10, "Number of recent events")
	day := fs.String("day", "", "Events of one day (YYYY-MM-DD or today)")
	month := fs.String("month", "", "Events of one month (YYYY-MM or this)")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 0 || *n <= 0 || (*day != "" && *month != "") {
		return usageError{usage}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}

	var (
		events []*focus.Event
		title  string
	)
	switch {
	case *day != "":
		span, err := tr.DaySpan(relative(*day, "today"))
		if err != nil {
			return err
		}
		if events, err = tr.InSpan(span); err != nil {
			return err
		}
		title = span.Label
	case *month != "":
		span, err := tr.MonthSpan(relative(*month, "this"))
		if err != nil {
			return err
		}
		if events, err = tr.InSpan(span); err != nil {
			return err
		}
		title = span.Label
	default:
		if events, err = tr.Recent(*n); err != nil {
			return err
		}
		title = c.t("list.recent", *n)
	}

	tasks, err := tr.Tasks()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(tasks))
	for _, task := range tasks {
		names[task.ID] = task.Name
	}
	c.println(c.printer.Theme.TitleStyle.Render(title))
	c.println(c.printer.Events(events, names, tr.Now()))
	return nil
}

// relative 把 today / this 转成空字符串（即当前日期）
func relative(value, word string) string {
	if strings.EqualFold(strings.TrimSpace(value), word) {
		return ""
	}
	return value
}

func (c *cli) cmdNotes(args []string) error {
	const usage = "tt notes ID TEXT"
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return usageError{usage}
	}
	id := args[0]
	tr, err := c.open()
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	if len(args) == 1 {
		if !c.interactive {
			return usageError{usage}
		}
		if _, err := tr.Event(id); err != nil {
			return err
		}
		text, err = c.lineInput().ReadLine(c.t("confirm.notes", id))
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				c.println(c.t("confirm.aborted"))
				return nil
			}
			return err
		}
	}
	if err := tr.SetNotes(id, text); err != nil {
		return err
	}
	c.success("event.notes_set", id)
	return nil
}

func (c *cli) cmdDelete(args []string) error {
	fs := c.flags("delete")
	yes := fs.Bool("yes", false, "Delete without asking")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 1 || strings.TrimSpace(pos[0]) == "" {
		return usageError{"tt delete ID [--yes]"}
	}
	id := pos[0]
	tr, err := c.open()
	if err != nil {
		return err
	}
	e, err := tr.Event(id)
	if err != nil {
		return err
	}
	if !*yes {
		c.println(c.printer.Event(e, taskOf(tr, e), tr.Now()))
		ok, err := c.confirm(c.t("confirm.delete", id))
		if err != nil {
			return err
		}
		if !ok {
			c.println(c.t("confirm.aborted"))
			return nil
		}
	}
	if err := tr.Delete(id); err != nil {
		return err
	}
	c.success("event.deleted", id)
	return nil
}

func (c *cli) cmdMerge(args []string) error {
	fs := c.flags("merge")
	yes := fs.Bool("yes", false, "Apply the merge without asking")
	ids, err := parseArgs(fs, args)
	if err != nil || len(ids) == 0 {
		return usageError{"tt merge ID ID... [--yes]"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	plan, err := tr.Merge(ids, false)
	if err != nil {
		return err
	}
	c.println(c.mergePreview(tr, plan))

	apply := *yes
	if !apply {
		if !c.interactive {
			c.println(c.printer.Theme.MutedStyle.Render(c.t("merge.preview", len(plan.Sources), plan.Merged.ID)))
			return nil
		}
		if apply, err = c.confirm(c.t("confirm.merge")); err != nil {
			return err
		}
		if !apply {
			c.println(c.t("confirm.aborted"))
			return nil
		}
	}
	if plan, err = tr.Merge(ids, true); err != nil {
		return err
	}
	c.success("merge.applied", len(plan.Sources), plan.Merged.ID)
	return nil
}

// mergePreview 源事件列表（markdown）+ 合并后的事件
func (c *cli) mergePreview(tr *tracker.Tracker, plan focus.MergePlan) string {
	var b strings.Builder
	for _, e := range plan.Sources {
		end, _ := e.Stopped()
		fmt.Fprintf(&b, "- `%s` %s - %s, %s\n",
			e.ID,
			time.Unix(e.Started, 0).In(c.printer.Loc).Format("2006-01-02 15:04"),
			time.Unix(end, 0).In(c.printer.Loc).Format("15:04"),
			tui.FormatDuration(e.Work),
		)
	}
	return tui.RenderMarkdown(b.String(), 80) + "\n\n" + c.printer.Event(plan.Merged, taskOf(tr, plan.Merged), tr.Now())
}

// --- Settings ---

func (c *cli) cmdConfig(args []string) error {
	const usage = "tt config [set split_min|pause_min|pause_max MINUTES]"
	tr, err := c.open()
	if err != nil {
		return err
	}
	switch {
	case len(args) == 0:
		thresholds, err := tr.Thresholds()
		if err != nil {
			return err
		}
		path := c.configPath
		if path == "" {
			if path, err = config.Path(); err != nil {
				return err
			}
		}
		c.println(c.printer.Settings(thresholds, [][2]string{
			{"lang", c.cfg.Lang},
			{"db_path", c.cfg.DBPath},
			{"log_level", c.cfg.LogLevel},
			{"theme", c.cfg.Theme},
			{"config", path},
		}))
		return nil
	case len(args) == 3 && args[0] == "set":
		minutes, err := strconv.Atoi(args[2])
		if err != nil {
			return usageError{usage}
		}
		if _, err := tr.SetThreshold(args[1], minutes); err != nil {
			return err
		}
		c.success("config.updated", strings.ToLower(args[1]), minutes)
		return nil
	default:
		return usageError{usage}
	}
}

func (c *cli) cmdLang(args []string) error {
	if len(args) != 1 {
		return usageError{"tt lang en|zh-CN"}
	}
	updated, err := config.Update(c.configPath, func(cfg *config.Config) error {
		lang, err := config.NormalizeLang(args[0])
		if err != nil {
			return err
		}
		cfg.Lang = lang
		return nil
	})
	if err != nil {
		return err
	}
	// 用新语言确认 / confirm in the new language
	c.println(c.printer.Theme.SuccessStyle.Render(i18n.New(updated.Lang).T("config.lang_set", updated.Lang)))
	return nil
}

func (c *cli) cmdDB(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return usageError{"tt db PATH"}
	}
	updated, err := config.Update(c.configPath, func(cfg *config.Config) error {
		cfg.DBPath = args[0]
		return nil
	})
	if err != nil {
		return err
	}
	c.success("config.db_set", updated.DBPath)
	return nil
}

// --- Views ---

func (c *cli) cmdWatch(args []string) error {
	if len(args) != 0 {
		return usageError{"tt watch"}
	}
	tr, err := c.open()
	if err != nil {
		return err
	}
	return tui.Run(tr, c.printer)
}

func (c *cli) cmdHelp(args []string) error {
	if len(args) != 0 {
		return usageError{"tt help"}
	}
	c.println(tui.RenderMarkdown(c.t("help.body"), 100))
	return nil
}
