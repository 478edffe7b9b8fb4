package tui

import (
	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap 定义 watch 视图的快捷键绑定
// KeyMap defines the watch view keybindings
type KeyMap struct {
	Split  key.Binding
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap 默认快捷键
// DefaultKeyMap returns default keybindings
func DefaultKeyMap(locale *i18n.I18n) KeyMap {
	if locale == nil {
		locale = i18n.Global()
	}
	return KeyMap{
		Split: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", locale.T("watch.split")),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", locale.T("watch.pause")),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", locale.T("watch.resume")),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", locale.T("watch.stop")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", locale.T("watch.quit")),
		),
	}
}

// ShortHelp 实现 help.KeyMap / ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Split, k.Pause, k.Resume, k.Stop, k.Quit}
}

// FullHelp 实现 help.KeyMap / FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// sync 按事件状态启用或禁用快捷键
func (k *KeyMap) sync(status focus.Status, hasEvent bool) {
	running := hasEvent && status == focus.StatusRunning
	pausing := hasEvent && status == focus.StatusPausing
	k.Split.SetEnabled(running)
	k.Pause.SetEnabled(running)
	k.Resume.SetEnabled(pausing)
	k.Stop.SetEnabled(running || pausing)
}
