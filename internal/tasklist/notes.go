package tasklist

import "todo-cli/internal/model"

// The notes editor works on a staged copy of one task's notes. Nothing is
// written until SaveNotes.

func (t *List) Mode() Mode {
	if t.notes.open {
		return ModeEditingNotes
	}
	return ModeIdle
}

// OpenNotes selects id and stages its notes. Opening while another task is
// being edited replaces that selection and drops its buffer.
func (t *List) OpenNotes(id string) bool {
	task, ok := t.Find(id)
	if !ok {
		return false
	}
	t.notes = notesEditor{open: true, targetID: task.ID, buffer: task.Notes}
	return true
}

// NotesTarget returns the task being edited, if it still exists.
func (t *List) NotesTarget() (model.Task, bool) {
	if !t.notes.open {
		return model.Task{}, false
	}
	return t.Find(t.notes.targetID)
}

func (t *List) NotesBuffer() string { return t.notes.buffer }

func (t *List) SetNotesBuffer(s string) {
	if t.notes.open {
		t.notes.buffer = s
	}
}

// SaveNotes commits the buffer into the selected task (if there is one and it
// still exists), then closes the editor regardless.
func (t *List) SaveNotes() error {
	targetID, buffer, open := t.notes.targetID, t.notes.buffer, t.notes.open
	t.closeNotes()
	if !open || targetID == "" {
		return nil
	}
	i := indexOf(t.tasks, targetID)
	if i < 0 {
		return nil
	}
	t.tasks[i].Notes = buffer
	return t.persist()
}

// CancelNotes discards the buffer.
func (t *List) CancelNotes() {
	t.closeNotes()
}

func (t *List) closeNotes() {
	t.notes = notesEditor{}
}
