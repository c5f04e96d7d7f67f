package tui

import (
	"charm.land/bubbles/v2/key"
)

type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Forward      key.Binding
	Backward     key.Binding
	PageForward  key.Binding
	PageBackward key.Binding
	Start        key.Binding
	End          key.Binding
	Mode         key.Binding
	More         key.Binding
	Fewer        key.Binding
	Refresh      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Forward: key.NewBinding(
			key.WithKeys("down", "j", "right", "l"),
			key.WithHelp("↓/→", "scroll"),
		),
		Backward: key.NewBinding(
			key.WithKeys("up", "k", "left", "h"),
			key.WithHelp("↑/←", "scroll back"),
		),
		PageForward: key.NewBinding(
			key.WithKeys("pgdown", "space", "f"),
			key.WithHelp("pgdn", "page"),
		),
		PageBackward: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page back"),
		),
		Start: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G", "shift+g"),
			key.WithHelp("G", "last"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "layout"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add items"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove items"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rebind"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Mode, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.PageForward, k.PageBackward},
		{k.Start, k.End, k.Mode, k.Refresh},
		{k.More, k.Fewer, k.Help, k.Quit},
	}
}
