package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the card screen bindings. Cursor movement and paging belong
// to the card list; Move only documents them in the help line.
type keyMap struct {
	Move         key.Binding
	Language     key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Refresh      key.Binding
	Theme        key.Binding
	Speak        key.Binding
	Open         key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Move:         key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "move")),
		Language:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		NextCategory: key.NewBinding(key.WithKeys("c", "tab"), key.WithHelp("c", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("C", "shift+tab"), key.WithHelp("C", "prev category")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Speak:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speak")),
		Open:         key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Language, k.NextCategory, k.Refresh, k.Speak, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Open, k.Speak},
		{k.Language, k.NextCategory, k.PrevCategory},
		{k.Refresh, k.Theme, k.Help, k.Quit},
	}
}

// pickerKeyMap holds the language picker bindings.
type pickerKeyMap struct {
	Move   key.Binding
	Filter key.Binding
	Choose key.Binding
	Close  key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Move:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "move")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Close:  key.NewBinding(key.WithKeys("esc", "l", "q"), key.WithHelp("esc", "close")),
	}
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Filter, k.Choose, k.Close}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
