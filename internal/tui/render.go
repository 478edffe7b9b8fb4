package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// Printer 把领域对象渲染成终端文本
// Printer renders tasks, events and laps for the terminal
type Printer struct {
	Theme  Theme
	Locale *i18n.I18n
	Loc    *time.Location
}

func NewPrinter(theme Theme, locale *i18n.I18n, loc *time.Location) Printer {
	if locale == nil {
		locale = i18n.Global()
	}
	if loc == nil {
		loc = time.Local
	}
	return Printer{Theme: theme, Locale: locale, Loc: loc}
}

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// FormatDuration 秒数 → 1h05m / 25m / 40s
// FormatDuration formats seconds as 1h05m, 25m or 40s
func FormatDuration(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, sec%3600/60, sec%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatPercent 0.756 → 75.6%
func FormatPercent(ratio float64) string {
	return humanize.FtoaWithDigits(ratio*100, 1) + "%"
}

func (p Printer) clock(ts int64) string {
	return time.Unix(ts, 0).In(p.Loc).Format("15:04")
}

func (p Printer) stamp(ts int64) string {
	return time.Unix(ts, 0).In(p.Loc).Format("2006-01-02 15:04")
}

// Status 本地化并着色的状态名
func (p Printer) Status(s focus.Status) string {
	switch s {
	case focus.StatusRunning:
		return p.Theme.RunningStyle.Render(p.Locale.T("status.running"))
	case focus.StatusPausing:
		return p.Theme.PausingStyle.Render(p.Locale.T("status.pausing"))
	default:
		return p.Theme.StoppedStyle.Render(p.Locale.T("status.stopped"))
	}
}

func (p Printer) lapKind(k focus.LapKind) string {
	if k == focus.LapPause {
		return p.Theme.PauseLapStyle.Render(p.Locale.T("lap.pause"))
	}
	return p.Theme.WorkLapStyle.Render(p.Locale.T("lap.split"))
}

func (p Printer) newTable(headers ...string) *table.Table {
	theme := p.Theme
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderStyle
			}
			return theme.CellStyle
		}).
		Headers(headers...)
}

func (p Printer) field(label, value string) string {
	return p.Theme.LabelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + value
}

// Event 渲染单个事件的详情和分段表
// Event renders one event with its laps. now drives the live work of a running event.
func (p Printer) Event(e *focus.Event, task focus.Task, now int64) string {
	var b strings.Builder
	b.WriteString(p.Theme.TitleStyle.Render(e.ID + "  " + task.Name))
	b.WriteString("\n")

	started := p.stamp(e.Started)
	if p.Locale.Locale() == "en" {
		started += p.Theme.MutedStyle.Render(" (" + humanize.RelTime(time.Unix(e.Started, 0), time.Unix(now, 0), "ago", "from now") + ")")
	}
	lines := []string{
		p.field(p.Locale.T("label.status"), p.Status(e.Status)),
		p.field(p.Locale.T("label.started"), started),
		p.field(p.Locale.T("label.work"), FormatDuration(e.LiveWork(now))),
	}
	if ratio, ok := focus.Productivity(e); ok {
		lines = append(lines, p.field(p.Locale.T("label.productivity"), FormatPercent(ratio)))
	}
	if notes := strings.TrimSpace(e.Notes); notes != "" {
		lines = append(lines, p.field(p.Locale.T("label.notes"), notes))
	}
	b.WriteString(strings.Join(lines, "\n"))

	if len(e.Laps) > 0 {
		b.WriteString("\n")
		b.WriteString(p.Laps(e.Laps, now))
	}
	return b.String()
}

// Laps 分段表；未结束的分段以 now 计算时长
func (p Printer) Laps(laps focus.Ledger, now int64) string {
	t := p.newTable("#",
		p.Locale.T("label.kind"),
		p.Locale.T("label.start"),
		p.Locale.T("label.end"),
		p.Locale.T("label.length"),
	)
	for i, lap := range laps {
		end, length := "…", now-lap.Start
		if !lap.Open() {
			end, length = p.clock(lap.End()), lap.Length()
		}
		t.Row(strconv.Itoa(i+1), p.lapKind(lap.Kind), p.clock(lap.Start), end, FormatDuration(length))
	}
	return t.String()
}

// Events 事件列表加汇总行；names 把 task id 映射到任务名
// Events renders an event table and a total line. names maps task ids to names.
func (p Printer) Events(events []*focus.Event, names map[string]string, now int64) string {
	if len(events) == 0 {
		return p.Theme.MutedStyle.Render(p.Locale.T("list.empty"))
	}
	t := p.newTable(
		p.Locale.T("label.id"),
		p.Locale.T("label.date"),
		p.Locale.T("label.task"),
		p.Locale.T("label.status"),
		p.Locale.T("label.work"),
		p.Locale.T("label.productivity"),
		p.Locale.T("label.notes"),
	)
	var total int64
	for _, e := range events {
		work := e.LiveWork(now)
		total += work
		prod := "-"
		if ratio, ok := focus.Productivity(e); ok {
			prod = FormatPercent(ratio)
		}
		name, ok := names[e.TaskID]
		if !ok {
			name = e.TaskID
		}
		t.Row(e.ID, p.stamp(e.Started), name, p.Status(e.Status), FormatDuration(work), prod, truncate(e.Notes, 30))
	}
	footer := p.Theme.MutedStyle.Render(p.Locale.T("list.total", FormatDuration(total), len(events)))
	return t.String() + "\n" + footer
}

func (p Printer) Tasks(tasks []focus.Task) string {
	if len(tasks) == 0 {
		return p.Theme.MutedStyle.Render(p.Locale.T("task.none"))
	}
	t := p.newTable(p.Locale.T("label.id"), p.Locale.T("label.task"), p.Locale.T("label.alias"))
	for _, task := range tasks {
		t.Row(task.ID, task.Name, task.Alias)
	}
	return t.String()
}

// Settings 阈值 + 应用配置；app 为有序键值对
func (p Printer) Settings(cfg focus.Config, app [][2]string) string {
	minutes := func(n int) string { return p.Locale.T("config.minutes", n) }
	lines := []string{
		p.Theme.TitleStyle.Render(p.Locale.T("config.thresholds")),
		p.field("split_min", minutes(cfg.SplitMin)),
		p.field("pause_min", minutes(cfg.PauseMin)),
		p.field("pause_max", minutes(cfg.PauseMax)),
	}
	if len(app) > 0 {
		lines = append(lines, "", p.Theme.TitleStyle.Render(p.Locale.T("config.app")))
		for _, kv := range app {
			lines = append(lines, p.field(kv[0], kv[1]))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
