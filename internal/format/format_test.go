package format

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

type textPayload struct{ s string }

func (p textPayload) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, p.s)
	return err
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": []task{{ID: "a", Text: "x \"q\"", IsCompleted: true}}, "count": 1}
	require.NoError(t, Write(&buf, v, "edn", false))
	assert.Equal(t, `{:count 1 :data [{:id "a" :isCompleted true :text "x \"q\""}]}`+"\n", buf.String())
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, map[string]any{"a": []int{}, "b": nil, "c": 1.5}, true))
	want := "{\n  :a []\n  :b nil\n  :c 1.5\n}\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"data": task{ID: "a"}}, "", false))
	assert.Equal(t, `{"data":{"id":"a","text":"","isCompleted":false}}`+"\n", buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, textPayload{s: "hello\n"}, "text", false))
	assert.Equal(t, "hello\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, map[string]int{"n": 1}, "text", false))
	assert.Equal(t, "{\n  \"n\": 1\n}\n", buf.String(), "non-Texter falls back to pretty JSON")
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(io.Discard, 1, "yaml", false))
}
