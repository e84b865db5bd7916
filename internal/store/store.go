package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	sqliteFileName = "todo.sqlite"
	jsonFileName   = "storage.json"
)

// KV is the string-to-string persistence surface the rest of the app is written
// against. All operations are synchronous.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Backend is an opened KV that owns resources.
type Backend interface {
	KV
	Close() error
}

type BackendKind string

const (
	BackendSQLite BackendKind = "sqlite"
	BackendJSON   BackendKind = "json"
	BackendMemory BackendKind = "memory"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendSQLite):
		return BackendSQLite, nil
	case string(BackendJSON):
		return BackendJSON, nil
	case string(BackendMemory):
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown store backend: %q (want sqlite|json|memory)", s)
	}
}

// Store locates the on-disk state for one data directory.
type Store struct {
	Dir  string
	Kind BackendKind
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return fmt.Errorf("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) JSONPath() string {
	return filepath.Join(s.Dir, jsonFileName)
}

// Open opens the configured backend, creating the directory and schema as needed.
func (s Store) Open(ctx context.Context) (Backend, error) {
	kind := s.Kind
	if kind == "" {
		kind = BackendSQLite
	}
	if kind == BackendMemory {
		return NewMemory(), nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	switch kind {
	case BackendSQLite:
		return OpenSQLite(ctx, s.SQLitePath())
	case BackendJSON:
		return OpenFile(s.JSONPath())
	default:
		return nil, fmt.Errorf("unknown store backend: %q", kind)
	}
}
