package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	require.NoError(t, err, "todo %v\nstderr:\n%s", args, stderr)

	var env map[string]any
	require.NoError(t, json.Unmarshal(stdout, &env), "stdout:\n%s", stdout)
	require.Contains(t, env, "data")
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	require.True(t, ok, "expected object data, got %#v", env["data"])
	return m
}

func dataList(t *testing.T, env map[string]any) []any {
	t.Helper()
	xs, ok := env["data"].([]any)
	require.True(t, ok, "expected array data, got %#v", env["data"])
	return xs
}

func TestCLI_LoginSeedsDefaultTasks(t *testing.T) {
	dir := t.TempDir()

	who := dataMap(t, mustRun(t, "--dir", dir, "login", "ada.lovelace@example.com"))
	assert.Equal(t, true, who["active"])
	assert.Equal(t, "Ada Lovelace", who["displayName"])

	tasks := dataList(t, mustRun(t, "--dir", dir, "tasks", "list"))
	assert.Len(t, tasks, tasklist.DefaultSeedCount)

	who = dataMap(t, mustRun(t, "--dir", dir, "whoami"))
	assert.Equal(t, "ada.lovelace@example.com", who["session"])
}

func TestCLI_TasksRequireSession(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "list"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "not logged in")

	_, _, err = runCLI(t, []string{"--dir", dir, "whoami"})
	assert.Error(t, err)
}

func TestCLI_BlankLoginRejected(t *testing.T) {
	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "login", "   "})
	assert.Error(t, err)
}

func TestCLI_TaskLifecycle(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "login", "a@b.c")

	added := dataMap(t, mustRun(t, "--dir", dir, "tasks", "add", "--text", "Buy milk"))
	id, _ := added["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Buy milk", added["text"])

	// Appended after the five blanks.
	toggled := dataMap(t, mustRun(t, "--dir", dir, "tasks", "toggle", "6"))
	assert.Equal(t, id, toggled["id"])
	assert.Equal(t, true, toggled["isCompleted"])

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "edit", id, "--text", "nope"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "read-only")

	mustRun(t, "--dir", dir, "tasks", "toggle", id[:9])
	edited := dataMap(t, mustRun(t, "--dir", dir, "tasks", "edit", id, "--text", "Buy oat milk"))
	assert.Equal(t, "Buy oat milk", edited["text"])
	assert.Equal(t, false, edited["isCompleted"])

	notes := dataMap(t, mustRun(t, "--dir", dir, "tasks", "notes", id, "--set", "2 litres"))
	assert.Equal(t, "2 litres", notes["notes"])
	notes = dataMap(t, mustRun(t, "--dir", dir, "tasks", "notes", id))
	assert.Equal(t, "2 litres", notes["notes"])

	deleted := dataMap(t, mustRun(t, "--dir", dir, "tasks", "delete", id))
	assert.Equal(t, id, deleted["deleted"])
	assert.Len(t, dataList(t, mustRun(t, "--dir", dir, "tasks", "list")), tasklist.DefaultSeedCount)
}

func TestCLI_ListIsDisplayOrdered(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "login", "a@b.c")
	mustRun(t, "--dir", dir, "tasks", "toggle", "1")

	tasks := dataList(t, mustRun(t, "--dir", dir, "tasks", "list"))
	require.Len(t, tasks, 5)
	last := tasks[4].(map[string]any)
	assert.Equal(t, true, last["isCompleted"])
	for _, x := range tasks[:4] {
		assert.Equal(t, false, x.(map[string]any)["isCompleted"])
	}
}

func TestCLI_LogoutKeepsTasks(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "login", "a@b.c")
	mustRun(t, "--dir", dir, "tasks", "add", "--text", "keep me")

	out := dataMap(t, mustRun(t, "--dir", dir, "logout"))
	assert.Equal(t, false, out["active"])
	_, _, err := runCLI(t, []string{"--dir", dir, "tasks", "list"})
	require.Error(t, err)

	mustRun(t, "--dir", dir, "login", "a@b.c")
	tasks := dataList(t, mustRun(t, "--dir", dir, "tasks", "list"))
	assert.Len(t, tasks, 6)
}

func TestCLI_TextAndEDNFormats(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "login", "a@b.c")
	mustRun(t, "--dir", dir, "tasks", "edit", "1", "--text", "first")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "tasks", "list"})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(stdout), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "   1  [ ] first", lines[0])
	assert.Equal(t, "   2  [ ] (untitled)", lines[1])

	stdout, _, err = runCLI(t, []string{"--dir", dir, "--format", "text", "whoami"})
	require.NoError(t, err)
	assert.Equal(t, "A (a@b.c)\n", string(stdout))

	stdout, _, err = runCLI(t, []string{"--dir", dir, "--format", "edn", "whoami"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(stdout), "{:data {:active true"), "got %s", stdout)
}

func TestCLI_ExportMarkdownAndPDF(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "login", "ada@example.com")
	mustRun(t, "--dir", dir, "tasks", "edit", "1", "--text", "Write report")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "export"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "# Tasks for Ada")
	assert.Contains(t, string(stdout), "- [ ] Write report")

	out := filepath.Join(t.TempDir(), "tasks.pdf")
	res := dataMap(t, mustRun(t, "--dir", dir, "export", "--as", "pdf", "--out", out))
	assert.Equal(t, out, res["path"])
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	_, _, err = runCLI(t, []string{"--dir", dir, "export", "--as", "docx"})
	assert.Error(t, err)
}

func TestCLI_JSONBackend(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "--backend", "json", "login", "a@b.c")

	_, err := os.Stat(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	assert.Len(t, dataList(t, mustRun(t, "--dir", dir, "--backend", "json", "tasks", "list")), 5)

	_, _, err = runCLI(t, []string{"--dir", dir, "--backend", "redis", "whoami"})
	assert.Error(t, err)
}

func TestResolveTaskRef(t *testing.T) {
	kv := store.NewMemory()
	raw := `[{"id":"abc1","text":"a"},{"id":"abc2","text":"b","isCompleted":true},{"id":"xyz","text":"c"}]`
	require.NoError(t, kv.Set(tasklist.StorageKey("s"), raw))
	l, err := tasklist.Load(kv, "s")
	require.NoError(t, err)

	got, err := resolveTaskRef(l, "abc2")
	require.NoError(t, err)
	assert.Equal(t, "abc2", got.ID)

	// Position counts in display order: abc1, xyz, abc2.
	got, err = resolveTaskRef(l, "2")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got.ID)

	got, err = resolveTaskRef(l, "xy")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got.ID)

	_, err = resolveTaskRef(l, "abc")
	assert.ErrorAs(t, err, &ambiguousRefError{})

	_, err = resolveTaskRef(l, "4")
	assert.ErrorContains(t, err, "out of range")

	_, err = resolveTaskRef(l, "nope")
	assert.ErrorAs(t, err, &notFoundError{})

	_, err = resolveTaskRef(l, " ")
	assert.Error(t, err)
}

func TestCLI_Docs(t *testing.T) {
	dir := t.TempDir()

	topics := dataMap(t, mustRun(t, "--dir", dir, "docs"))
	assert.Contains(t, topics["topics"], "keys")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "docs", "refs", "--raw"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(stdout), "# Task references"))

	_, _, err = runCLI(t, []string{"--dir", dir, "docs", "nope"})
	assert.Error(t, err)
}
