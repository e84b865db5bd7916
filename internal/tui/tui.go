package tui

import (
	"log/slog"

	"todo-cli/internal/session"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	KV     store.KV
	Gate   *session.Gate
	Logger *slog.Logger
	// Theme is light|dark|auto; auto defers to the persisted toggle and the terminal.
	Theme  string
	Glyphs string
	IDFunc tasklist.IDFunc
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
