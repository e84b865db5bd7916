package model

// Task is a single to-do entry. The json tags are the persisted wire format
// and must stay stable: existing stores hold arrays of these records.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Notes       string `json:"notes"`
	IsCompleted bool   `json:"isCompleted"`
}

// Title returns the text used when a task has to be named in chrome
// (modal titles, exports). Empty text falls back to a placeholder.
func (t Task) Title() string {
	if t.Text == "" {
		return "this task"
	}
	return t.Text
}
