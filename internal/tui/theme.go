package tui

import "github.com/charmbracelet/lipgloss"

// Theme 定义终端输出的色彩和样式
// Theme defines colors and styles for terminal output
type Theme struct {
	// 基础色 / Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Success   lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color

	// 预构建样式 / Pre-built styles
	TitleStyle     lipgloss.Style
	LabelStyle     lipgloss.Style
	HeaderStyle    lipgloss.Style
	CellStyle      lipgloss.Style
	BorderStyle    lipgloss.Style
	StatusBarStyle lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	MutedStyle     lipgloss.Style
	RunningStyle   lipgloss.Style
	PausingStyle   lipgloss.Style
	StoppedStyle   lipgloss.Style
	WorkLapStyle   lipgloss.Style
	PauseLapStyle  lipgloss.Style
}

// ThemeByName 按名称返回主题，未知名称回退到暗色主题
// ThemeByName returns the named theme; unknown names fall back to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "plain":
		return PlainTheme()
	default:
		return DarkTheme()
	}
}

// DarkTheme 暗色主题（默认）
// DarkTheme is the default dark theme
func DarkTheme() Theme {
	return buildTheme(Theme{
		Primary:   lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Accent:    lipgloss.Color("#F59E0B"),
		Danger:    lipgloss.Color("#EF4444"),
		Warning:   lipgloss.Color("#F59E0B"),
		Success:   lipgloss.Color("#10B981"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#E5E7EB"),
		Border:    lipgloss.Color("#374151"),
	})
}

// LightTheme 亮色主题 / LightTheme suits light terminal backgrounds
func LightTheme() Theme {
	return buildTheme(Theme{
		Primary:   lipgloss.Color("#5B21B6"),
		Secondary: lipgloss.Color("#0E7490"),
		Accent:    lipgloss.Color("#B45309"),
		Danger:    lipgloss.Color("#B91C1C"),
		Warning:   lipgloss.Color("#B45309"),
		Success:   lipgloss.Color("#047857"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#111827"),
		Border:    lipgloss.Color("#D1D5DB"),
	})
}

// PlainTheme 无颜色，适合管道和日志
// PlainTheme has no colors at all.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		TitleStyle:     plain.Bold(true),
		LabelStyle:     plain,
		HeaderStyle:    plain.Bold(true).Padding(0, 1),
		CellStyle:      plain.Padding(0, 1),
		BorderStyle:    plain,
		StatusBarStyle: plain,
		ErrorStyle:     plain,
		SuccessStyle:   plain,
		WarningStyle:   plain,
		MutedStyle:     plain,
		RunningStyle:   plain,
		PausingStyle:   plain,
		StoppedStyle:   plain,
		WorkLapStyle:   plain,
		PauseLapStyle:  plain,
	}
}

func buildTheme(t Theme) Theme {
	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.LabelStyle = lipgloss.NewStyle().
		Foreground(t.Secondary)

	t.HeaderStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Padding(0, 1)

	t.CellStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 1)

	t.BorderStyle = lipgloss.NewStyle().
		Foreground(t.Border)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.RunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	t.PausingStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.StoppedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.WorkLapStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.PauseLapStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	return t
}
