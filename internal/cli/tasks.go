package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/session"
	"todo-cli/internal/tasklist"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage the active session's tasks",
		Long: strings.TrimSpace(`
Task references (<ref>) may be a full id, a 1-based position as shown by
"todo tasks list", or a unique id prefix.
`),
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksNotesCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (incomplete first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				return writeOut(cmd, app, taskListEnvelope(l.Sorted()))
			})
		},
	}
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				t, err := l.Add()
				if err != nil {
					return writeErr(cmd, err)
				}
				if text != "" {
					if err := l.EditText(t.ID, text); err != nil {
						return writeErr(cmd, err)
					}
					t, _ = l.Find(t.ID)
				}
				return writeOut(cmd, app, taskEnvelope(t))
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task text (default blank)")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Replace a task's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				t, err := resolveTaskRef(l, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if t.IsCompleted {
					return writeErr(cmd, readOnlyError{id: t.ID})
				}
				if err := l.EditText(t.ID, text); err != nil {
					return writeErr(cmd, err)
				}
				t, _ = l.Find(t.ID)
				return writeOut(cmd, app, taskEnvelope(t))
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newTasksToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <ref>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				t, err := resolveTaskRef(l, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := l.ToggleComplete(t.ID); err != nil {
					return writeErr(cmd, err)
				}
				t, _ = l.Find(t.ID)
				return writeOut(cmd, app, taskEnvelope(t))
			})
		},
	}
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <ref>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				t, err := resolveTaskRef(l, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := l.Delete(t.ID); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"deleted": t.ID},
					text: func(w io.Writer) error {
						_, err := fmt.Fprintf(w, "deleted %s\n", t.ID)
						return err
					},
				})
			})
		},
	}
	return cmd
}

func newTasksNotesCmd(app *App) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "notes <ref>",
		Short: "Show a task's notes, or replace them with --set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(_ *session.Gate, l *tasklist.List) error {
				t, err := resolveTaskRef(l, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if cmd.Flags().Changed("set") {
					l.OpenNotes(t.ID)
					l.SetNotesBuffer(set)
					if err := l.SaveNotes(); err != nil {
						return writeErr(cmd, err)
					}
					t, _ = l.Find(t.ID)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"id": t.ID, "notes": t.Notes},
					text: func(w io.Writer) error {
						_, err := io.WriteString(w, t.Notes)
						if err == nil && !strings.HasSuffix(t.Notes, "\n") {
							_, err = io.WriteString(w, "\n")
						}
						return err
					},
				})
			})
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Replace the notes (use --set \"\" to clear)")
	return cmd
}

// resolveTaskRef accepts a full id, a 1-based display position, or a unique id
// prefix, in that order.
func resolveTaskRef(l *tasklist.List, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, errors.New("task reference required")
	}
	if t, ok := l.Find(ref); ok {
		return t, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		sorted := l.Sorted()
		if n < 1 || n > len(sorted) {
			return model.Task{}, fmt.Errorf("task number out of range: %d", n)
		}
		return sorted[n-1], nil
	}

	var matches []model.Task
	for _, t := range l.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, errNotFound("task", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, ambiguousRefError{ref: ref, matches: len(matches)}
	}
}

func taskEnvelope(t model.Task) envelope {
	return envelope{Data: t, text: func(w io.Writer) error {
		return writeTaskLine(w, 0, t)
	}}
}

func taskListEnvelope(tasks []model.Task) envelope {
	return envelope{Data: tasks, text: func(w io.Writer) error {
		if len(tasks) == 0 {
			_, err := fmt.Fprintln(w, "no tasks")
			return err
		}
		for i, t := range tasks {
			if err := writeTaskLine(w, i+1, t); err != nil {
				return err
			}
		}
		return nil
	}}
}

// writeTaskLine prints "{N:>4}  [x] text", with notes indented below. num 0
// prints the id instead of a position.
func writeTaskLine(w io.Writer, num int, t model.Task) error {
	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}
	label := fmt.Sprintf("%4d", num)
	if num == 0 {
		label = t.ID
	}
	if _, err := fmt.Fprintf(w, "%s  %s %s\n", label, check, displayText(t.Text)); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(t.Notes, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "          %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// displayText flattens newlines and names blank tasks.
func displayText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
