package store

import "github.com/taskdeck/taskdeck/models"

// TaskStore defines the interface for task persistence.
// It outlines the contract for keeping the in-memory collection and its
// durable mirror consistent: every mutation is fully persisted before it
// returns, and a failed write leaves both sides untouched.
type TaskStore interface {
	// Initialize configures the store with backend-specific parameters,
	// such as file path and data format. It loads any existing state and
	// must be called before any other store operation. An existing but
	// unreadable data file is reported as ErrCorruptData, never silently
	// replaced with an empty collection.
	Initialize(config map[string]string) error

	// Save inserts or replaces a task by its ID. The collection is written
	// to durable storage before Save returns; on failure the in-memory
	// state is unchanged and the error wraps ErrPersistence.
	Save(task models.Task) error

	// Get retrieves a task by its unique identifier. It returns
	// ErrTaskNotFound if no task with that id exists. Get never touches
	// disk.
	Get(id string) (models.Task, error)

	// List returns a point-in-time copy of every task. Mutating the
	// returned slice does not affect the store. List never touches disk.
	List() ([]models.Task, error)

	// Delete removes a task by id and persists the result. Deleting an
	// unknown id is a no-op, not an error.
	Delete(id string) error

	// DeleteAll removes every task from the store and persists the empty
	// collection. This is a destructive operation.
	DeleteAll() error

	// Backup copies the current durable state to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the durable state with the contents of the source
	// path and reloads the in-memory collection from it.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks
	// or database connections.
	Close() error
}
