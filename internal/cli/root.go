package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/logging"
	"todo-cli/internal/session"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir     string
	Backend string
	Format  string
	Pretty  bool

	cfg *config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{log: logging.Discard()}
	cfg, cfgErr := config.Load()
	if cfg == nil {
		cfg = &config.Config{Backend: "sqlite", Theme: "auto", Glyphs: "unicode", LogLevel: "info", LogFormat: "text"}
	}
	app.cfg = cfg

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Local to-do list (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo login ada@example.com
  todo tasks add --text "Buy milk"
  todo tasks toggle 1
  todo export --as pdf --out tasks.pdf
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return writeErr(cmd, cfgErr)
		}
		if strings.TrimSpace(app.Dir) == "" {
			return writeErr(cmd, fmt.Errorf("no data dir; pass --dir or set TODO_DIR"))
		}
		app.log = logging.New(app.cfg.LogLevel, app.cfg.LogFormat, cmd.ErrOrStderr())
		slog.SetDefault(app.log)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", cfg.Dir, "Data directory (default ~/.todo)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", cfg.Backend, "Storage backend (sqlite|json|memory)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	kind, err := store.ParseBackendKind(app.Backend)
	if err != nil {
		return err
	}
	s := store.Store{Dir: app.Dir, Kind: kind}
	if err := s.Ensure(); err != nil {
		return err
	}
	kv, err := s.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer kv.Close()

	// The terminal belongs to the UI; logs go to a file in the data dir.
	logFile, err := os.OpenFile(config.LogPath(app.Dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	var logOut io.Writer = io.Discard
	if err == nil {
		defer logFile.Close()
		logOut = logFile
	}
	log := logging.New(app.cfg.LogLevel, app.cfg.LogFormat, logOut)

	return tui.Run(tui.Options{
		KV:     kv,
		Gate:   session.NewGate(kv, session.WithLogger(log)),
		Logger: log,
		Theme:  app.cfg.Theme,
		Glyphs: app.cfg.Glyphs,
	})
}

// openStore opens the configured backend. Callers close it.
func openStore(cmd *cobra.Command, app *App) (store.Backend, error) {
	kind, err := store.ParseBackendKind(app.Backend)
	if err != nil {
		return nil, err
	}
	return store.Store{Dir: app.Dir, Kind: kind}.Open(cmd.Context())
}

// withTasks runs fn against the active session's list.
func withTasks(cmd *cobra.Command, app *App, fn func(*session.Gate, *tasklist.List) error) error {
	kv, err := openStore(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	gate := session.NewGate(kv, session.WithLogger(app.log))
	if _, _, err := gate.Restore(); err != nil {
		return writeErr(cmd, err)
	}
	id, err := gate.Require()
	if err != nil {
		return writeErr(cmd, errNotLoggedIn())
	}
	list, err := tasklist.Load(kv, id, tasklist.WithLogger(app.log))
	if err != nil {
		return writeErr(cmd, err)
	}
	return fn(gate, list)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the {"data": ...} wrapper every command prints. text, when set,
// renders the payload for --format text.
type envelope struct {
	Data any `json:"data"`
	text func(io.Writer) error
}

func (e envelope) WriteText(w io.Writer) error {
	if e.text == nil {
		return format.WriteJSON(w, e.Data, true)
	}
	return e.text(w)
}

func writeOut(cmd *cobra.Command, app *App, v envelope) error {
	if err := format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
