package task

import (
	"errors"

	"github.com/taskdeck/taskdeck/store"
)

// ErrValidation is returned when caller-supplied data violates an invariant,
// such as a blank title. It is always recoverable at the call site.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when an operation references an unknown task id.
// It is the store's sentinel, re-exported so callers of the service never
// need to import the store package to classify an error.
var ErrNotFound = store.ErrTaskNotFound
