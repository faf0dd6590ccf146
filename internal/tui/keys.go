package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Toggle     key.Binding
	ToggleAll  key.Binding
	SelectNone key.Binding
	Sort       key.Binding
	PageSize   key.Binding
	Filter     key.Binding
	Export     key.Binding
	SaveView   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Toggle:     key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "select row")),
		ToggleAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		SelectNone: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
		Sort:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "sort column")),
		PageSize:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "rows per page")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export selected")),
		SaveView:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save view")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Sort, k.NextPage, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Toggle, k.ToggleAll, k.SelectNone, k.Export},
		{k.Sort, k.PageSize, k.Filter, k.SaveView},
		{k.Help, k.Quit},
	}
}
