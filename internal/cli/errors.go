package cli

import (
	"errors"
	"fmt"
)

type notFoundError struct {
	kind string
	ref  string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.ref)
}

func errNotFound(kind, ref string) error {
	return notFoundError{kind: kind, ref: ref}
}

type ambiguousRefError struct {
	ref     string
	matches int
}

func (e ambiguousRefError) Error() string {
	return fmt.Sprintf("ambiguous task reference %q matches %d tasks; use more of the id", e.ref, e.matches)
}

func errNotLoggedIn() error {
	return errors.New("not logged in; run `todo login <email>` first")
}

type readOnlyError struct {
	id string
}

func (e readOnlyError) Error() string {
	return fmt.Sprintf("task %s is completed and read-only; toggle it first", e.id)
}
