package tasklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todo-cli/internal/model"
)

// ErrNotSequence is returned by Decode when the stored value is valid JSON but
// not an array of task records (null, an object, a string, ...).
var ErrNotSequence = errors.New("stored tasks are not an array")

const keyPrefix = "tasks_"

// StorageKey is the key holding a session's task array. The identifier is used
// verbatim, so every distinct identifier gets an independent list.
func StorageKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Encode serializes tasks as a JSON array. An empty list encodes as "[]".
func Encode(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a stored task array. The returned slice is never nil on success.
func Decode(raw string) ([]model.Task, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("decode tasks: %w", ErrNotSequence)
	}
	// Check the shape before decoding records so "not an array" is distinguishable
	// from "array with a bad record".
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, fmt.Errorf("decode tasks: %w", ErrNotSequence)
	}

	var out []model.Task
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}
