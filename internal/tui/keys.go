package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Pin       key.Binding
	Contacted key.Binding
	Remind    key.Binding
	Scan      key.Binding
	ScanInput key.Binding
	Search    key.Binding
	Clear     key.Binding
	Edit      key.Binding
	Export    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Help      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		JumpTab:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump to tab")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Pin:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Contacted: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark contacted")),
		Remind:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remind / cancel")),
		Scan:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan sample")),
		ScanInput: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "scan code")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "share png")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

func (k keyMap) listHelp(full bool) []key.Binding {
	short := []key.Binding{k.Up, k.Down, k.Toggle, k.Contacted, k.Scan, k.Search, k.NextTab, k.Help, k.Quit}
	if !full {
		return short
	}
	return append(short, k.Delete, k.Pin, k.Remind, k.ScanInput, k.Clear, k.JumpTab, k.PrevTab)
}

func (k keyMap) meHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Export, k.NextTab, k.PrevTab, k.Quit}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Cancel}
}
