// Package session owns the single "current user" value: who is logged in, and
// therefore which task list is shown.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"todo-cli/internal/logging"
	"todo-cli/internal/store"
)

// StorageKey holds the active session identifier.
const StorageKey = "todo_user_email"

var (
	ErrEmptyIdentifier = errors.New("session identifier is empty")
	ErrNoSession       = errors.New("no active session")
)

type Gate struct {
	kv      store.KV
	log     *slog.Logger
	current string
}

type Option func(*Gate)

func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

func NewGate(kv store.KV, opts ...Option) *Gate {
	g := &Gate{kv: kv, log: logging.Discard()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Restore makes a previously persisted identifier the active session.
// An empty stored value counts as no session.
func (g *Gate) Restore() (string, bool, error) {
	v, ok, err := g.kv.Get(StorageKey)
	if err != nil {
		return "", false, fmt.Errorf("restore session: %w", err)
	}
	if !ok || v == "" {
		g.current = ""
		return "", false, nil
	}
	g.current = v
	g.log.Debug("session restored", "session", v)
	return v, true, nil
}

// Login persists identifier verbatim and makes it active. Only identifiers that
// are blank after trimming are rejected; the format is not checked.
func (g *Gate) Login(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return ErrEmptyIdentifier
	}
	if err := g.kv.Set(StorageKey, identifier); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	g.current = identifier
	g.log.Info("logged in", "session", identifier)
	return nil
}

// Logout forgets the active session. Task data is left in place.
func (g *Gate) Logout() error {
	if err := g.kv.Remove(StorageKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if g.current != "" {
		g.log.Info("logged out", "session", g.current)
	}
	g.current = ""
	return nil
}

func (g *Gate) Current() (string, bool) {
	return g.current, g.current != ""
}

// Require returns the active identifier or ErrNoSession.
func (g *Gate) Require() (string, error) {
	if g.current == "" {
		return "", ErrNoSession
	}
	return g.current, nil
}
