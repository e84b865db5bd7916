package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File is a KV stored as one JSON object on disk. Every call re-reads the file,
// so a second process writing the same file is picked up (last write wins).
type File struct {
	path string
}

func OpenFile(path string) (*File, error) {
	f := &File{path: path}
	// Fail early on a corrupt file rather than on the first Set.
	if _, err := f.readAll(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readAll() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (f *File) writeAll(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(f.path)+".*.tmp", f.path, b, 0o600)
}

func (f *File) Get(key string) (string, bool, error) {
	m, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	m, err := f.readAll()
	if err != nil {
		return err
	}
	m[key] = value
	return f.writeAll(m)
}

func (f *File) Remove(key string) error {
	m, err := f.readAll()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return f.writeAll(m)
}

func (f *File) Close() error { return nil }
