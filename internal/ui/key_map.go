package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	sort      key.Binding
	algorithm key.Binding
	criterion key.Binding
	mood      key.Binding
	recommend key.Binding
	path      key.Binding
	cancel    key.Binding
	toggle    key.Binding
	next      key.Binding
	previous  key.Binding
	playlists key.Binding
	add       key.Binding
	create    key.Binding
	remove    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		algorithm: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "algorithm")),
		criterion: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "criterion")),
		mood:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mood")),
		recommend: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommend")),
		path:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find path")),
		cancel:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		previous:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		playlists: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "playlists")),
		add:       key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add to playlist")),
		create:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new playlist")),
		remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.sort, k.recommend, k.path, k.playlists, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.sort, k.algorithm, k.criterion, k.mood},
		{k.recommend, k.path, k.cancel},
		{k.toggle, k.next, k.previous},
		{k.playlists, k.add, k.create, k.remove, k.quit},
	}
}
