package session

import (
	"errors"
	"testing"

	"todo-cli/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct{ err error }

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(string, string) error         { return f.err }
func (f failingKV) Remove(string) error              { return f.err }

func TestGate_RestoreWithoutPersistedValue(t *testing.T) {
	g := NewGate(store.NewMemory())
	id, ok, err := g.Restore()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)

	_, err = g.Require()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGate_LoginPersistsRawValue(t *testing.T) {
	kv := store.NewMemory()
	g := NewGate(kv)

	require.NoError(t, g.Login("  ada@example.com "))
	cur, ok := g.Current()
	assert.True(t, ok)
	assert.Equal(t, "  ada@example.com ", cur, "identifier is stored verbatim, not trimmed")

	v, ok, err := kv.Get(StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "  ada@example.com ", v)

	// A fresh gate over the same store picks the session back up.
	g2 := NewGate(kv)
	id, ok, err := g2.Restore()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "  ada@example.com ", id)
}

func TestGate_LoginRejectsBlank(t *testing.T) {
	kv := store.NewMemory()
	g := NewGate(kv)

	for _, in := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, g.Login(in), ErrEmptyIdentifier, "input %q", in)
	}
	_, ok, _ := kv.Get(StorageKey)
	assert.False(t, ok, "rejected login must not write")
	_, ok = g.Current()
	assert.False(t, ok)
}

func TestGate_LogoutRemovesOnlySessionKey(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set("tasks_ada@example.com", `[]`))
	g := NewGate(kv)
	require.NoError(t, g.Login("ada@example.com"))

	require.NoError(t, g.Logout())
	_, ok := g.Current()
	assert.False(t, ok)
	_, ok, _ = kv.Get(StorageKey)
	assert.False(t, ok)

	v, ok, _ := kv.Get("tasks_ada@example.com")
	assert.True(t, ok, "tasks survive logout")
	assert.Equal(t, `[]`, v)
}

func TestGate_RestoreTreatsEmptyValueAsNoSession(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(StorageKey, ""))
	_, ok, err := NewGate(kv).Restore()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_StoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk full")
	g := NewGate(failingKV{err: boom})

	_, _, err := g.Restore()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, g.Login("ada@example.com"), boom)
	_, ok := g.Current()
	assert.False(t, ok, "failed login must not activate the session")
	assert.ErrorIs(t, g.Logout(), boom)
}
