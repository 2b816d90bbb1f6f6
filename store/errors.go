package store

import "errors"

var (
	// ErrTaskNotFound is returned by lookups for an id the store does not hold.
	ErrTaskNotFound = errors.New("task not found")

	// ErrPersistence wraps a failed durable write. The in-memory collection is
	// guaranteed unchanged when an operation returns it.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptData is returned at load time when the data file exists but
	// cannot be parsed, or its checksum does not match. The store refuses to
	// treat such a file as empty.
	ErrCorruptData = errors.New("data file is corrupt")
)
