package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"todo-cli/internal/export"
	"todo-cli/internal/session"
	"todo-cli/internal/tasklist"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var as string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active session's tasks (md|csv|json|pdf)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(gate *session.Gate, l *tasklist.List) error {
				id, _ := gate.Current()
				title := "Tasks for " + session.DisplayName(id)

				var buf bytes.Buffer
				if err := export.Write(&buf, l.Sorted(), strings.ToLower(strings.TrimSpace(as)), title); err != nil {
					return writeErr(cmd, err)
				}
				if out == "" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
					return writeErr(cmd, fmt.Errorf("write %s: %w", out, err))
				}
				return writeOut(cmd, app, envelope{Data: map[string]any{
					"path":   out,
					"format": as,
					"tasks":  l.Len(),
				}})
			})
		},
	}

	cmd.Flags().StringVar(&as, "as", "md", "Export format ("+strings.Join(export.Formats, "|")+")")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
