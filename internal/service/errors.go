package service

import "errors"

var (
	// ErrNotFound means the note id resolves to nothing in the store.
	ErrNotFound = errors.New("note not found")

	// ErrEmptyNote rejects a create with no title, body, attachment or ink.
	ErrEmptyNote = errors.New("note is empty")

	// ErrTargetNotFound reports a reorder whose counterpart disappeared,
	// usually a race with a concurrent deletion. The operation is a no-op.
	ErrTargetNotFound = errors.New("target note not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
