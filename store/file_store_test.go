package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/models"
)

func setupTestStore(t *testing.T) (*FileTaskStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")

	store := NewFileTaskStore()
	config := map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "json",
	}

	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store, filePath
}

func makeTask(title string) models.Task {
	return models.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  models.PriorityMedium,
		Status:    models.StatusTodo,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileTaskStore_BasicOperations(t *testing.T) {
	store, _ := setupTestStore(t)

	task := makeTask("Test Task")
	task.Description = "Test Description"

	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	retrieved, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if retrieved.Title != task.Title {
		t.Errorf("Title mismatch: got %q, want %q", retrieved.Title, task.Title)
	}

	// Save is insert-or-replace.
	task.Title = "Updated Task"
	if err := store.Save(task); err != nil {
		t.Fatalf("Save (replace) failed: %v", err)
	}

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task after replace, got %d", len(tasks))
	}
	if tasks[0].Title != "Updated Task" {
		t.Errorf("Replace not applied: got %q", tasks[0].Title)
	}

	if err := store.Delete(task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestFileTaskStore_RoundTrip(t *testing.T) {
	store, filePath := setupTestStore(t)

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	completed := time.Now().UTC().Truncate(time.Second)

	task := makeTask("Round Trip")
	task.Description = "survives a restart"
	task.Priority = models.PriorityUrgent
	task.Status = models.StatusCompleted
	task.DueDate = &due
	task.CompletedAt = &completed

	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A fresh store over the same file must see the identical task.
	reopened := NewFileTaskStore()
	if err := reopened.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "json"}); err != nil {
		t.Fatalf("Re-initialize failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}

	if got.ID != task.ID || got.Title != task.Title || got.Description != task.Description {
		t.Errorf("Field mismatch after reopen: got %+v, want %+v", got, task)
	}
	if got.Priority != task.Priority || got.Status != task.Status {
		t.Errorf("Enum mismatch after reopen: got %s/%s, want %s/%s", got.Priority, got.Status, task.Priority, task.Status)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("DueDate mismatch: got %v, want %v", got.DueDate, due)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completed) {
		t.Errorf("CompletedAt mismatch: got %v, want %v", got.CompletedAt, completed)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, task.CreatedAt)
	}
}

func TestFileTaskStore_DeleteUnknownIsNoop(t *testing.T) {
	store, _ := setupTestStore(t)

	if err := store.Save(makeTask("Keep me")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(uuid.New().String()); err != nil {
		t.Errorf("Delete of unknown id should be a no-op, got %v", err)
	}

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Expected 1 task, got %d", len(tasks))
	}
}

func TestFileTaskStore_ListReturnsCopy(t *testing.T) {
	store, _ := setupTestStore(t)

	task := makeTask("Original")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tasks, _ := store.List()
	tasks[0].Title = "Mutated through snapshot"

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Original" {
		t.Errorf("Snapshot mutation leaked into store: %q", got.Title)
	}
}

func TestFileTaskStore_SaveFailureLeavesStateUntouched(t *testing.T) {
	store, _ := setupTestStore(t)

	task := makeTask("Survivor")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Point the store at a directory that does not exist so the temp-file
	// write fails, simulating a disk fault mid-save.
	goodPath := store.filePath
	store.filePath = filepath.Join(t.TempDir(), "missing", "tasks.json")

	err := store.Save(makeTask("Doomed"))
	if err == nil {
		t.Fatal("Expected save to fail against a missing directory")
	}
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Expected ErrPersistence, got %v", err)
	}

	store.filePath = goodPath

	tasks, listErr := store.List()
	if listErr != nil {
		t.Fatalf("List failed: %v", listErr)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("In-memory state changed after failed save: %+v", tasks)
	}
}

func TestFileTaskStore_CorruptFileRefusesToLoad(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")

	if err := os.WriteFile(filePath, []byte("{this is not json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store := NewFileTaskStore()
	err := store.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "json"})
	if err == nil {
		_ = store.Close()
		t.Fatal("Expected Initialize to fail on a corrupt file")
	}
	if !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData, got %v", err)
	}
}

func TestFileTaskStore_ChecksumMismatchRefusesToLoad(t *testing.T) {
	store, filePath := setupTestStore(t)

	if err := store.Save(makeTask("Tampered")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_ = store.Close()

	// Tamper with the data file without refreshing its checksum.
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(filePath, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	reopened := NewFileTaskStore()
	err = reopened.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "json"})
	if err == nil {
		_ = reopened.Close()
		t.Fatal("Expected Initialize to fail on checksum mismatch")
	}
	if !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData, got %v", err)
	}
}

func TestFileTaskStore_MissingFileIsEmptyStore(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "nested", "tasks.json")

	store := NewFileTaskStore()
	if err := store.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "json"}); err != nil {
		t.Fatalf("Initialize on missing file should succeed, got %v", err)
	}
	defer func() { _ = store.Close() }()

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected empty store, got %d tasks", len(tasks))
	}
}

func TestFileTaskStore_YAMLFormat(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.yaml")

	store := NewFileTaskStore()
	if err := store.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "yaml"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	task := makeTask("YAML Task")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, task.Title)
	}
}

func TestFileTaskStore_TOMLFormat(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.toml")

	store := NewFileTaskStore()
	if err := store.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "toml"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	task := makeTask("TOML Task")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen so the TOML decode path is exercised too.
	reopened := NewFileTaskStore()
	if err := reopened.Initialize(map[string]string{"dataFile": filePath, "dataFileFormat": "toml"}); err != nil {
		t.Fatalf("Re-initialize failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, task.Title)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, task.CreatedAt)
	}
}

func TestFileTaskStore_BackupRestore(t *testing.T) {
	store, _ := setupTestStore(t)

	task := makeTask("Backed up")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := store.Backup(backupPath); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := store.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if tasks, _ := store.List(); len(tasks) != 0 {
		t.Fatalf("Expected empty store after DeleteAll, got %d", len(tasks))
	}

	if err := store.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after restore failed: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("Title mismatch after restore: got %q, want %q", got.Title, task.Title)
	}
}

func TestFileTaskStore_RestoreDuplicateIDsRefused(t *testing.T) {
	store, _ := setupTestStore(t)

	task := makeTask("Survivor")
	if err := store.Save(task); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A backup carrying the same id twice is malformed, the same way a data
	// file with duplicate ids is.
	dup := makeTask("Twin")
	backup := models.TaskList{Tasks: []models.Task{dup, dup}, TotalCount: 2}
	data, err := json.Marshal(backup)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		t.Fatalf("Failed to write backup: %v", err)
	}

	if err := store.Restore(backupPath); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Expected ErrCorruptData for duplicate ids, got %v", err)
	}

	// The current collection must be untouched.
	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after refused restore failed: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("State changed after refused restore: got %q", got.Title)
	}
}

func TestWriteFileSynced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tmp")
	payload := []byte("durable bytes")

	if err := writeFileSynced(path, payload); err != nil {
		t.Fatalf("writeFileSynced failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Content mismatch: got %q, want %q", got, payload)
	}

	// Overwrite truncates rather than appends.
	if err := writeFileSynced(path, []byte("x")); err != nil {
		t.Fatalf("writeFileSynced (overwrite) failed: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != "x" {
		t.Errorf("Overwrite not truncated: got %q", got)
	}

	if err := writeFileSynced(filepath.Join(t.TempDir(), "missing", "out.tmp"), payload); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}
