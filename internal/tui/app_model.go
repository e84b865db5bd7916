package tui

import (
	"log/slog"
	"time"

	"todo-cli/internal/logging"
	"todo-cli/internal/model"
	"todo-cli/internal/session"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	kv     store.KV
	gate   *session.Gate
	log    *slog.Logger
	idFunc tasklist.IDFunc

	width  int
	height int

	view  view
	modal modalKind
	dark  bool

	tasks *tasklist.List
	// cursorID tracks the selected task by id so re-sorting keeps the selection.
	cursorID string
	editing  bool

	identityInput textinput.Model
	textInput     textinput.Model
	notesInput    textarea.Model
	// notesLoaded is the textarea value right after opening. The staged buffer
	// follows the textarea only once the two differ (notesDirty).
	notesLoaded string
	notesDirty  bool

	keys keyMap
	help help.Model

	minibufferText  string
	minibufferSetAt time.Time
}

func newAppModel(opts Options) (appModel, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	gate := opts.Gate
	if gate == nil {
		gate = session.NewGate(opts.KV, session.WithLogger(log))
	}

	ii := textinput.New()
	ii.Placeholder = "you@example.com"
	ii.Prompt = ""

	ti := textinput.New()
	ti.Placeholder = "Type your task here..."
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "Add notes for this task..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(modalBodyWidth(80))
	ta.SetHeight(8)

	m := appModel{
		kv:            opts.KV,
		gate:          gate,
		log:           log,
		idFunc:        opts.IDFunc,
		identityInput: ii,
		textInput:     ti,
		notesInput:    ta,
		keys:          defaultKeyMap(),
		help:          help.New(),
	}

	dark, ok := resolveTheme(opts.Theme, opts.KV)
	if !ok {
		dark = lipgloss.HasDarkBackground()
	}
	m.dark = dark
	lipgloss.SetHasDarkBackground(dark)

	id, active, err := gate.Restore()
	if err != nil {
		return appModel{}, err
	}
	if !active {
		m.showLanding()
		return m, nil
	}
	if err := m.openSession(id); err != nil {
		return appModel{}, err
	}
	return m, nil
}

func (m *appModel) showLanding() {
	m.view = viewLanding
	m.modal = modalNone
	m.editing = false
	m.tasks = nil
	m.cursorID = ""
	m.identityInput.Reset()
	m.identityInput.Focus()
}

// openSession loads the session's list and switches to the task view.
func (m *appModel) openSession(id string) error {
	opts := []tasklist.Option{tasklist.WithLogger(m.log)}
	if m.idFunc != nil {
		opts = append(opts, tasklist.WithIDFunc(m.idFunc))
	}
	list, err := tasklist.Load(m.kv, id, opts...)
	if err != nil {
		return err
	}
	m.tasks = list
	m.view = viewTasks
	m.modal = modalNone
	m.editing = false
	m.identityInput.Blur()
	m.identityInput.Reset()
	m.cursorID = ""
	if sorted := list.Sorted(); len(sorted) > 0 {
		m.cursorID = sorted[0].ID
	}
	return nil
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = time.Now()
}

func (m *appModel) reportErr(what string, err error) {
	if err == nil {
		return
	}
	logging.WithError(m.log, err).Error(what)
	m.showMinibuffer(what + ": " + err.Error())
}

// cursorIndex returns the selected task's position in display order, or -1.
func (m appModel) cursorIndex(sorted []model.Task) int {
	for i, t := range sorted {
		if t.ID == m.cursorID {
			return i
		}
	}
	return -1
}

func (m appModel) selectedTask() (model.Task, bool) {
	if m.tasks == nil || m.cursorID == "" {
		return model.Task{}, false
	}
	return m.tasks.Find(m.cursorID)
}

// selectIndex moves the cursor to display position i, clamped to the list.
func (m *appModel) selectIndex(i int) {
	sorted := m.tasks.Sorted()
	if len(sorted) == 0 {
		m.cursorID = ""
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	m.cursorID = sorted[i].ID
}

func (m appModel) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if w > maxContentW {
		w = maxContentW
	}
	return w
}
