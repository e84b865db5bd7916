package tui

import (
	"errors"
	"time"

	"todo-cli/internal/logging"
	"todo-cli/internal/session"
	"todo-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func minibufferTick() tea.Cmd {
	return tea.Tick(minibufferTickEvery, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	return minibufferTick()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notesInput.SetWidth(modalBodyWidth(m.width))
		h := m.height - 12
		if h < 3 {
			h = 3
		}
		if h > 16 {
			h = 16
		}
		m.notesInput.SetHeight(h)
		m.help.Width = m.contentWidth()
		if m.editing {
			m.textInput.Width = m.editInputWidth()
			m.textInput.SetCursor(m.textInput.Position())
		}
		return m, nil

	case minibufferTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, minibufferTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewLanding:
			return m.updateLanding(msg)
		case viewTasks:
			switch {
			case m.modal == modalNotes:
				return m.updateNotes(msg)
			case m.editing:
				return m.updateEditText(msg)
			default:
				return m.updateTasks(msg)
			}
		}
	}

	// Everything else (cursor blink etc.) goes to whichever input has focus.
	var cmd tea.Cmd
	switch {
	case m.view == viewLanding:
		m.identityInput, cmd = m.identityInput.Update(msg)
	case m.modal == modalNotes:
		m.notesInput, cmd = m.notesInput.Update(msg)
	case m.editing:
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.submit) {
		value := m.identityInput.Value()
		if err := m.gate.Login(value); err != nil {
			if errors.Is(err, session.ErrEmptyIdentifier) {
				// Blank submissions are ignored.
				return m, nil
			}
			m.reportErr("Login failed", err)
			return m, nil
		}
		if err := m.openSession(value); err != nil {
			m.reportErr("Could not load tasks", err)
			if lerr := m.gate.Logout(); lerr != nil {
				logging.WithError(m.log, lerr).Error("logout after failed load")
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.identityInput, cmd = m.identityInput.Update(msg)
	return m, cmd
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sorted := m.tasks.Sorted()
	idx := m.cursorIndex(sorted)

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		if idx > 0 {
			m.cursorID = sorted[idx-1].ID
		} else {
			m.selectIndex(0)
		}
		return m, nil

	case key.Matches(msg, m.keys.down):
		m.selectIndex(idx + 1)
		return m, nil

	case key.Matches(msg, m.keys.edit):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if t.IsCompleted {
			m.showMinibuffer("Completed tasks are read-only")
			return m, nil
		}
		return m, m.beginEdit(t.Text)

	case key.Matches(msg, m.keys.toggle):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.reportErr("Could not save tasks", m.tasks.ToggleComplete(t.ID))
		// Keep the cursor on the same row so several tasks can be ticked in a row.
		m.selectIndex(idx)
		return m, nil

	case key.Matches(msg, m.keys.add):
		t, err := m.tasks.Add()
		m.reportErr("Could not save tasks", err)
		m.cursorID = t.ID
		return m, m.beginEdit("")

	case key.Matches(msg, m.keys.del):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.reportErr("Could not save tasks", m.tasks.Delete(t.ID))
		m.selectIndex(idx)
		return m, nil

	case key.Matches(msg, m.keys.notes):
		t, ok := m.selectedTask()
		if !ok || !m.tasks.OpenNotes(t.ID) {
			return m, nil
		}
		m.modal = modalNotes
		m.notesInput.SetValue(m.tasks.NotesBuffer())
		m.notesLoaded = m.notesInput.Value()
		m.notesDirty = false
		return m, m.notesInput.Focus()

	case key.Matches(msg, m.keys.theme):
		m.reportErr("Could not save theme", m.toggleTheme())
		return m, nil

	case key.Matches(msg, m.keys.reload):
		if err := m.tasks.Reload(); err != nil {
			m.reportErr("Reload failed", err)
			return m, nil
		}
		if _, ok := m.selectedTask(); !ok {
			m.selectIndex(idx)
		}
		m.showMinibuffer("Reloaded")
		return m, nil

	case key.Matches(msg, m.keys.logout):
		if err := m.gate.Logout(); err != nil {
			m.reportErr("Logout failed", err)
			return m, nil
		}
		m.showLanding()
		return m, nil
	}
	return m, nil
}

func (m *appModel) beginEdit(text string) tea.Cmd {
	m.editing = true
	m.textInput.Width = m.editInputWidth()
	m.textInput.SetValue(text)
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// editInputWidth is the visible width of the inline editor: the selected row's
// text width minus the input line's padding and the cursor cell.
func (m appModel) editInputWidth() int {
	t, _ := m.selectedTask()
	w := rowTextWidth(t, m.contentWidth()) - 3
	if w < 1 {
		w = 1
	}
	return w
}

// updateEditText persists the text on every change.
func (m appModel) updateEditText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.done) {
		m.editing = false
		m.textInput.Blur()
		return m, nil
	}

	before := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if after := m.textInput.Value(); after != before {
		m.reportErr("Could not save tasks", m.tasks.EditText(m.cursorID, after))
	}
	return m, cmd
}

func (m appModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		err := m.tasks.SaveNotes()
		m.closeNotesModal()
		if err != nil {
			m.reportErr("Could not save notes", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.cancel):
		m.tasks.CancelNotes()
		m.closeNotesModal()
		return m, nil
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	if v := m.notesInput.Value(); m.notesDirty || v != m.notesLoaded {
		m.notesDirty = true
		m.tasks.SetNotesBuffer(v)
	}
	return m, cmd
}

func (m *appModel) closeNotesModal() {
	m.modal = modalNone
	m.notesInput.Blur()
	m.notesInput.Reset()
	m.notesLoaded = ""
	m.notesDirty = false
}

// notesModalTitle is "Notes for: <text>", falling back when the text is blank.
func notesModalTitle(l *tasklist.List) string {
	t, ok := l.NotesTarget()
	if !ok {
		return "Notes"
	}
	return "Notes for: " + t.Title()
}
