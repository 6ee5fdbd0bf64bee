package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	toggle   key.Binding
	del      key.Binding
	upload   key.Binding
	generate key.Binding
	video    key.Binding
	download key.Binding
	refresh  key.Binding
	yes      key.Binding
	no       key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		upload:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		video:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "make video")),
		download: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "video link")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.toggle, k.del, k.upload, k.generate},
		{k.video, k.download, k.refresh, k.quit},
	}
}
