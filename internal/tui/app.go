package tui

import (
	"errors"
	"strings"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/tracker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller watch 视图调用的操作（*tracker.Tracker 实现了它）
// Controller is what the watch view drives; *tracker.Tracker implements it.
type Controller interface {
	Event(id string) (*focus.Event, error)
	TaskOf(e *focus.Event) (focus.Task, error)
	Thresholds() (focus.Config, error)
	Split() (tracker.Result, error)
	Pause() (tracker.Result, error)
	Resume() (tracker.Result, error)
	Stop() (tracker.Result, error)
	Now() int64
}

var _ Controller = (*tracker.Tracker)(nil)

// --- Tea Messages ---

// tickMsg 每秒刷新一次事件和实时工作时长
// tickMsg reloads the event and its live work time once a second
type tickMsg time.Time

// App Bubble Tea 主 Model（tt watch）
// App is the Bubble Tea model behind tt watch
type App struct {
	width int

	ctrl    Controller
	printer Printer
	keys    KeyMap
	help    help.Model

	// 状态 / State
	event     *focus.Event
	task      focus.Task
	now       int64
	message   string
	lastError string
	quitting  bool
}

// NewApp 创建 TUI 应用
// NewApp creates the watch application and loads the latest event
func NewApp(ctrl Controller, printer Printer) App {
	a := App{
		ctrl:    ctrl,
		printer: printer,
		keys:    DefaultKeyMap(printer.Locale),
		help:    help.New(),
	}
	a.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case tickMsg:
		// 重新载入，以反映其他终端里执行的 tt 命令
		a.refresh()
		return a, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		case key.Matches(msg, a.keys.Split):
			a.apply(focus.OpSplit, a.ctrl.Split)
		case key.Matches(msg, a.keys.Pause):
			a.apply(focus.OpPause, a.ctrl.Pause)
		case key.Matches(msg, a.keys.Resume):
			a.apply(focus.OpResume, a.ctrl.Resume)
		case key.Matches(msg, a.keys.Stop):
			a.apply(focus.OpStop, a.ctrl.Stop)
		}
		return a, nil
	}
	return a, nil
}

func (a App) View() string {
	if a.quitting {
		return ""
	}
	theme := a.printer.Theme

	parts := []string{theme.TitleStyle.Render(a.printer.Locale.T("watch.title")), ""}
	if a.event == nil {
		parts = append(parts, theme.MutedStyle.Render(a.printer.Locale.T("watch.idle")))
	} else {
		parts = append(parts, a.printer.Event(a.event, a.task, a.now))
	}
	if a.message != "" {
		parts = append(parts, "", a.message)
	}
	if a.lastError != "" {
		parts = append(parts, "", a.lastError)
	}

	bar := theme.StatusBarStyle
	if a.width > 0 {
		bar = bar.Width(a.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(parts, "\n"), bar.Render(a.help.View(a.keys)))
}

// --- 内部方法 / Internal methods ---

func (a *App) apply(op focus.Op, fn func() (tracker.Result, error)) {
	res, err := fn()
	if err != nil {
		a.message = ""
		a.lastError = a.printer.Error(err)
		a.refresh()
		return
	}
	cfg, err := a.ctrl.Thresholds()
	if err != nil {
		cfg = focus.DefaultConfig()
	}
	a.lastError = ""
	a.message = a.printer.Outcome(op, res, cfg)
	a.refresh()
}

func (a *App) refresh() {
	a.now = a.ctrl.Now()
	e, err := a.ctrl.Event("")
	if err != nil {
		a.event = nil
		if !errors.Is(err, tracker.ErrNoActiveEvent) {
			a.lastError = a.printer.Error(err)
		}
		a.keys.sync(focus.StatusStopped, false)
		return
	}
	a.event = e
	task, err := a.ctrl.TaskOf(e)
	if err != nil {
		task = focus.Task{ID: e.TaskID, Name: e.TaskID}
	}
	a.task = task
	a.keys.sync(e.Status, true)
}

// Run 启动 Bubble Tea TUI
// Run starts the watch TUI and blocks until the user quits
func Run(ctrl Controller, printer Printer) error {
	p := tea.NewProgram(NewApp(ctrl, printer), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
