package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// WatchKeyMap defines the key bindings of the watch view.
type WatchKeyMap struct {
	Pause       key.Binding
	Step        key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Restart     key.Binding
	Trail       key.Binding
	Candidates  key.Binding
	Obstruction key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Faster, k.Slower, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Faster, k.Slower},
		{k.Restart, k.Trail, k.Candidates, k.Obstruction},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("space/p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n", "step (paused)"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_", "down", "j"),
			key.WithHelp("-", "slower"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Trail: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle trail"),
		),
		Candidates: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "loop cells"),
		),
		Obstruction: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "next obstruction"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuKeyMap defines the key bindings of the puzzle picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "watch"),
		),
		History: key.NewBinding(
			key.WithKeys("tab", "h"),
			key.WithHelp("tab", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryKeyMap defines the key bindings for the run history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPuzzle key.Binding
	PrevPuzzle key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPuzzle, k.PrevPuzzle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPuzzle, k.PrevPuzzle},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPuzzle: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next puzzle"),
		),
		PrevPuzzle: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev puzzle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
