package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	edit   key.Binding
	toggle key.Binding
	add    key.Binding
	del    key.Binding
	notes  key.Binding
	theme  key.Binding
	reload key.Binding
	logout key.Binding
	quit   key.Binding

	submit key.Binding
	done   key.Binding
	save   key.Binding
	cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit")),
		toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		del:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		notes:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		logout: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		done:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
		save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) landingHelp() []key.Binding {
	return []key.Binding{k.submit, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))}
}

func (k keyMap) tasksHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.edit, k.toggle, k.add, k.del, k.notes, k.theme, k.logout, k.quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.done}
}

func (k keyMap) notesHelp() []key.Binding {
	return []key.Binding{k.save, k.cancel}
}
