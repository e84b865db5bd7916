package cli

import (
	"fmt"
	"io"

	"todo-cli/internal/session"
	"todo-cli/internal/tasklist"

	"github.com/spf13/cobra"
)

type sessionInfo struct {
	Active      bool   `json:"active"`
	Session     string `json:"session,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func sessionEnvelope(id string) envelope {
	info := sessionInfo{Active: id != ""}
	if info.Active {
		info.Session = id
		info.DisplayName = session.DisplayName(id)
	}
	return envelope{Data: info, text: func(w io.Writer) error {
		if !info.Active {
			_, err := fmt.Fprintln(w, "not logged in")
			return err
		}
		_, err := fmt.Fprintf(w, "%s (%s)\n", info.DisplayName, info.Session)
		return err
	}}
}

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Start a session and load (or seed) its task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			id := args[0]
			gate := session.NewGate(kv, session.WithLogger(app.log))
			if err := gate.Login(id); err != nil {
				return writeErr(cmd, err)
			}
			if _, err := tasklist.Load(kv, id, tasklist.WithLogger(app.log)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sessionEnvelope(id))
		},
	}
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session (task data is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			gate := session.NewGate(kv, session.WithLogger(app.log))
			if _, _, err := gate.Restore(); err != nil {
				return writeErr(cmd, err)
			}
			if err := gate.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sessionEnvelope(""))
		},
	}
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			id, ok, err := session.NewGate(kv).Restore()
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotLoggedIn())
			}
			return writeOut(cmd, app, sessionEnvelope(id))
		},
	}
	return cmd
}
