package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taskdeck/taskdeck/models"
	_ "modernc.org/sqlite"
)

// SQLiteTaskStore implements the TaskStore interface on a SQLite database.
// It is selected with dataFileFormat "sqlite". Durability comes from SQLite's
// own journaling instead of the file store's rename dance; every mutation runs
// in a transaction, so a failed write changes nothing.
type SQLiteTaskStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteTaskStore creates a new instance of SQLiteTaskStore.
// It does not open the database; Initialize must be called separately.
func NewSQLiteTaskStore() *SQLiteTaskStore {
	return &SQLiteTaskStore{}
}

// Initialize opens (or creates) the database named by the 'dataFile' config
// key and creates the schema if needed. The special path ':memory:' yields an
// ephemeral store for tests.
func (s *SQLiteTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.dbPath = val
	} else {
		s.dbPath = "tasks.db"
	}

	if format, ok := config[dataFileFormatKey]; ok && format != "" && format != formatSQLite {
		return fmt.Errorf("SQLiteTaskStore only supports dataFileFormat %q, got %q", formatSQLite, format)
	}

	if s.dbPath != ":memory:" {
		dir := filepath.Dir(s.dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if s.dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil && s.dbPath != ":memory:" {
		_ = db.Close()
		// The pragma is the first statement to touch the file; a path that
		// exists but is not a SQLite database fails here.
		return fmt.Errorf("%w: open %s: %v", ErrCorruptData, s.dbPath, err)
	}

	s.db = db
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: init schema for %s: %v", ErrCorruptData, s.dbPath, err)
	}
	return nil
}

func (s *SQLiteTaskStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		due_date TEXT,
		created_at TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
	`
	_, err := s.db.Exec(schema)
	return err
}

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save inserts or replaces a task by its ID.
func (s *SQLiteTaskStore) Save(task models.Task) error {
	if task.ID == "" {
		return fmt.Errorf("cannot save task with empty id")
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, description, priority, status, due_date, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			priority = excluded.priority,
			status = excluded.status,
			due_date = excluded.due_date,
			created_at = excluded.created_at,
			completed_at = excluded.completed_at`,
		task.ID, task.Title, task.Description, string(task.Priority), string(task.Status),
		encodeTime(task.DueDate), task.CreatedAt.UTC().Format(time.RFC3339Nano), encodeTime(task.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("%w: save task %s: %v", ErrPersistence, task.ID, err)
	}
	return nil
}

func (s *SQLiteTaskStore) scanTask(row *sql.Row) (models.Task, error) {
	var task models.Task
	var priority, status, createdAt string
	var dueDate, completedAt sql.NullString

	err := row.Scan(&task.ID, &task.Title, &task.Description, &priority, &status, &dueDate, &createdAt, &completedAt)
	if err != nil {
		return models.Task{}, err
	}
	return s.hydrateTask(task, priority, status, createdAt, dueDate, completedAt)
}

func (s *SQLiteTaskStore) hydrateTask(task models.Task, priority, status, createdAt string, dueDate, completedAt sql.NullString) (models.Task, error) {
	task.Priority = models.TaskPriority(priority)
	task.Status = models.TaskStatus(status)

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: bad created_at for task %s: %v", ErrCorruptData, task.ID, err)
	}
	task.CreatedAt = created

	if task.DueDate, err = decodeTime(dueDate); err != nil {
		return models.Task{}, fmt.Errorf("%w: bad due_date for task %s: %v", ErrCorruptData, task.ID, err)
	}
	if task.CompletedAt, err = decodeTime(completedAt); err != nil {
		return models.Task{}, fmt.Errorf("%w: bad completed_at for task %s: %v", ErrCorruptData, task.ID, err)
	}
	return task, nil
}

// Get retrieves a task by its unique identifier.
func (s *SQLiteTaskStore) Get(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, priority, status, due_date, created_at, completed_at
		FROM tasks WHERE id = ?`, id)

	task, err := s.scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// List returns a copy of every task.
func (s *SQLiteTaskStore) List() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, priority, status, due_date, created_at, completed_at
		FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		var priority, status, createdAt string
		var dueDate, completedAt sql.NullString
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &priority, &status, &dueDate, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task, err = s.hydrateTask(task, priority, status, createdAt, dueDate, completedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task by id. Deleting an unknown id is a no-op.
func (s *SQLiteTaskStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete task %s: %v", ErrPersistence, id, err)
	}
	return nil
}

// DeleteAll removes every task from the store.
func (s *SQLiteTaskStore) DeleteAll() error {
	if _, err := s.db.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("%w: delete all tasks: %v", ErrPersistence, err)
	}
	return nil
}

// Backup writes a consistent copy of the database to the destination path
// using SQLite's VACUUM INTO, which snapshots regardless of WAL state.
func (s *SQLiteTaskStore) Backup(destinationPath string) error {
	// VACUUM INTO refuses to overwrite an existing file.
	if _, err := os.Stat(destinationPath); err == nil {
		if err := os.Remove(destinationPath); err != nil {
			return fmt.Errorf("failed to replace existing backup %s: %w", destinationPath, err)
		}
	}
	if _, err := s.db.Exec(`VACUUM INTO ?`, destinationPath); err != nil {
		return fmt.Errorf("failed to back up database to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the task table contents with those of the backup database
// at sourcePath. It runs in one transaction: a bad backup leaves the current
// data untouched.
func (s *SQLiteTaskStore) Restore(sourcePath string) error {
	src := NewSQLiteTaskStore()
	if err := src.Initialize(map[string]string{dataFileKey: sourcePath, dataFileFormatKey: formatSQLite}); err != nil {
		return fmt.Errorf("open backup %s: %w", sourcePath, err)
	}
	defer func() { _ = src.Close() }()

	tasks, err := src.List()
	if err != nil {
		return fmt.Errorf("read backup %s: %w", sourcePath, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin restore: %v", ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("%w: clear tasks for restore: %v", ErrPersistence, err)
	}
	for _, task := range tasks {
		if _, err := tx.Exec(`
			INSERT INTO tasks (id, title, description, priority, status, due_date, created_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.Title, task.Description, string(task.Priority), string(task.Status),
			encodeTime(task.DueDate), task.CreatedAt.UTC().Format(time.RFC3339Nano), encodeTime(task.CompletedAt),
		); err != nil {
			return fmt.Errorf("%w: restore task %s: %v", ErrPersistence, task.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit restore: %v", ErrPersistence, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteTaskStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
