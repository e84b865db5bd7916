package tasklist

import (
	"testing"

	"todo-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []model.Task{
		{ID: "b", Text: "second first", Notes: "multi\nline", IsCompleted: true},
		{ID: "a", Text: "ünïcode ✓", Notes: ""},
		{ID: "c", Text: `quotes "and" \ backslashes`, Notes: "<html>"},
	}
	raw, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncode_WireFormat(t *testing.T) {
	raw, err := Encode([]model.Task{{ID: "x", Text: "t", Notes: "n", IsCompleted: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x","text":"t","notes":"n","isCompleted":true}]`, raw)

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, empty)
}

func TestDecode_AcceptsMissingFields(t *testing.T) {
	out, err := Decode(` [{"id":"x"}] `)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{{ID: "x"}}, out)
}

func TestDecode_RejectsNonArrays(t *testing.T) {
	for _, raw := range []string{`null`, `{}`, `"[]"`, `true`, ``, `   `} {
		_, err := Decode(raw)
		assert.ErrorIs(t, err, ErrNotSequence, "input %q", raw)
	}
	_, err := Decode(`[`)
	assert.Error(t, err)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "tasks_ada@example.com", StorageKey("ada@example.com"))
	assert.Equal(t, "tasks_ ada ", StorageKey(" ada "))
}
