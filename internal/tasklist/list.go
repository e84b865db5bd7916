// Package tasklist holds one session's tasks in memory and mirrors every change
// to the key-value store as a full snapshot.
package tasklist

import (
	"fmt"
	"log/slog"
	"slices"

	"todo-cli/internal/logging"
	"todo-cli/internal/model"
	"todo-cli/internal/store"

	"github.com/google/uuid"
)

// DefaultSeedCount is how many blank tasks a session starts with.
const DefaultSeedCount = 5

type Mode int

const (
	ModeIdle Mode = iota
	ModeEditingNotes
)

func (m Mode) String() string {
	switch m {
	case ModeEditingNotes:
		return "editing-notes"
	default:
		return "idle"
	}
}

// IDFunc returns a new task id. Collisions with existing ids are retried.
type IDFunc func() string

type List struct {
	kv        store.KV
	sessionID string
	key       string
	log       *slog.Logger
	newID     IDFunc

	tasks []model.Task
	notes notesEditor
}

type notesEditor struct {
	open     bool
	targetID string
	buffer   string
}

type Option func(*List)

func WithLogger(l *slog.Logger) Option {
	return func(t *List) {
		if l != nil {
			t.log = l
		}
	}
}

func WithIDFunc(f IDFunc) Option {
	return func(t *List) {
		if f != nil {
			t.newID = f
		}
	}
}

// Load reads the session's persisted tasks. A missing or unreadable snapshot
// falls back to DefaultSeedCount blank tasks; the result is written back
// immediately. Only store I/O failures are returned as errors.
func Load(kv store.KV, sessionID string, opts ...Option) (*List, error) {
	t := &List{
		kv:        kv,
		sessionID: sessionID,
		key:       StorageKey(sessionID),
		log:       logging.Discard(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = logging.WithSession(t.log, sessionID)

	if err := t.readSnapshot(); err != nil {
		return nil, err
	}
	if err := t.persist(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *List) readSnapshot() error {
	raw, ok, err := t.kv.Get(t.key)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		t.tasks = t.defaults()
		return nil
	}
	tasks, err := Decode(raw)
	if err != nil {
		logging.WithError(t.log, err).Warn("stored tasks unreadable; starting from defaults")
		t.tasks = t.defaults()
		return nil
	}
	t.tasks = tasks
	if n := t.repairIDs(); n > 0 {
		t.log.Warn("assigned fresh ids to stored tasks", "count", n)
	}
	return nil
}

// Reload replaces in-memory state with the persisted snapshot, e.g. after
// another process wrote to the same session. Any open notes editor is closed.
func (t *List) Reload() error {
	t.closeNotes()
	if err := t.readSnapshot(); err != nil {
		return err
	}
	return t.persist()
}

func (t *List) defaults() []model.Task {
	out := make([]model.Task, 0, DefaultSeedCount)
	for range DefaultSeedCount {
		out = append(out, model.Task{ID: t.uniqueID(out)})
	}
	return out
}

// repairIDs gives blank or duplicated ids a fresh value. Returns how many changed.
func (t *List) repairIDs() int {
	seen := make(map[string]bool, len(t.tasks))
	n := 0
	for i := range t.tasks {
		id := t.tasks[i].ID
		if id == "" || seen[id] {
			t.tasks[i].ID = t.uniqueID(t.tasks)
			n++
		}
		seen[t.tasks[i].ID] = true
	}
	return n
}

func (t *List) uniqueID(existing []model.Task) string {
	for {
		id := t.newID()
		if id != "" && indexOf(existing, id) < 0 {
			return id
		}
	}
}

func indexOf(tasks []model.Task, id string) int {
	return slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == id })
}

func (t *List) persist() error {
	raw, err := Encode(t.tasks)
	if err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	if err := t.kv.Set(t.key, raw); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Tasks returns a copy in stored order.
func (t *List) Tasks() []model.Task {
	return slices.Clone(t.tasks)
}

func (t *List) Len() int { return len(t.tasks) }

func (t *List) Find(id string) (model.Task, bool) {
	i := indexOf(t.tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return t.tasks[i], true
}

// Sorted returns the display order: incomplete tasks first, then completed
// ones, each group keeping its stored order.
func (t *List) Sorted() []model.Task {
	return SortForDisplay(t.tasks)
}

func SortForDisplay(tasks []model.Task) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		switch {
		case a.IsCompleted == b.IsCompleted:
			return 0
		case a.IsCompleted:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Add appends a blank task.
func (t *List) Add() (model.Task, error) {
	task := model.Task{ID: t.uniqueID(t.tasks)}
	t.tasks = append(t.tasks, task)
	t.log.Debug("task added", "id", task.ID)
	return task, t.persist()
}

// EditText replaces a task's text. Unknown ids are ignored.
func (t *List) EditText(id, text string) error {
	i := indexOf(t.tasks, id)
	if i < 0 {
		return nil
	}
	t.tasks[i].Text = text
	return t.persist()
}

// ToggleComplete flips completion. Text and notes are left alone.
func (t *List) ToggleComplete(id string) error {
	i := indexOf(t.tasks, id)
	if i < 0 {
		return nil
	}
	t.tasks[i].IsCompleted = !t.tasks[i].IsCompleted
	t.log.Debug("task toggled", "id", id, "completed", t.tasks[i].IsCompleted)
	return t.persist()
}

func (t *List) Delete(id string) error {
	i := indexOf(t.tasks, id)
	if i < 0 {
		return nil
	}
	t.tasks = slices.Delete(t.tasks, i, i+1)
	t.log.Debug("task deleted", "id", id)
	return t.persist()
}
