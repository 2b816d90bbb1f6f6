package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/taskdeck/taskdeck/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "tasks.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	formatSQLite      = "sqlite"
	checksumSuffix    = ".checksum"
)

// FileTaskStore implements the TaskStore interface using a file backend.
// It supports JSON, YAML, and TOML formats. The in-memory map is the
// authoritative copy: reads are served from it under a shared lock, and every
// mutation rewrites the whole file through a temp-file-plus-rename so a reader
// of the file only ever sees a complete old state or a complete new state.
type FileTaskStore struct {
	filePath string
	format   string
	tasks    map[string]models.Task
	mu       sync.RWMutex
	// flk is an advisory guard against a second taskdeck process opening the
	// same file. It is held from Initialize until Close. Cross-process
	// coordination beyond this is not a supported mode of operation.
	flk *flock.Flock
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{
		tasks: make(map[string]models.Task),
	}
}

// Initialize configures the FileTaskStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'tasks.json' in the current working directory, and
// an optional 'dataFileFormat' of json, yaml, or toml. It loads existing
// tasks from the file if it exists and establishes the file lock.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// If filePath was the default and format is not JSON, adjust the default
	// extension. Users providing a full path are responsible for its extension.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", s.filePath, err)
	}
	if !locked {
		// Another process holds the lock; block until it releases.
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking lock for %s: %w", s.filePath, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadFromFile()
	if err != nil {
		_ = s.flk.Unlock()
		return err
	}
	s.tasks = tasks
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadFromFile reads the data file, verifies its checksum, and unmarshals the
// task collection. A missing file yields an empty collection; an existing but
// unreadable file is a hard ErrCorruptData, never an empty result.
func (s *FileTaskStore) loadFromFile() (map[string]models.Task, error) {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create the empty data file so the lock has a real
			// inode to attach to, and seed its checksum.
			_ = os.Remove(checksumFilePath)
			if f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644); createErr != nil {
				return nil, fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			} else {
				_ = f.Close()
			}
			if err := os.WriteFile(checksumFilePath, []byte(calculateChecksum(nil)), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write initial checksum file %s: %v\n", checksumFilePath, err)
			}
			return make(map[string]models.Task), nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	// Verify checksum if the sidecar exists. Data written before checksums
	// were introduced loads fine; the next save creates the sidecar.
	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if actualChecksum := calculateChecksum(data); actualChecksum != expectedChecksum {
			return nil, fmt.Errorf("%w: checksum mismatch for %s - expected %s, got %s", ErrCorruptData, s.filePath, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}

	if len(data) == 0 {
		return make(map[string]models.Task), nil
	}

	var taskList models.TaskList
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &taskList); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal JSON from %s: %v", ErrCorruptData, s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &taskList); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal YAML from %s: %v", ErrCorruptData, s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &taskList); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal TOML from %s: %v", ErrCorruptData, s.filePath, err)
		}
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	tasks := make(map[string]models.Task, len(taskList.Tasks))
	for _, task := range taskList.Tasks {
		if _, dup := tasks[task.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate task id %s in %s", ErrCorruptData, task.ID, s.filePath)
		}
		tasks[task.ID] = task
	}
	return tasks, nil
}

// persist writes the given collection to the data file, then its checksum.
// Both go through a temp file in the same directory and an atomic rename, so
// a crash mid-write leaves the previous complete state on disk. Failures wrap
// ErrPersistence; the caller must not have touched s.tasks yet.
func (s *FileTaskStore) persist(tasks map[string]models.Task) error {
	taskList := models.TaskList{
		Tasks:      make([]models.Task, 0, len(tasks)),
		TotalCount: len(tasks),
	}
	for _, task := range tasks {
		taskList.Tasks = append(taskList.Tasks, task)
	}

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(taskList, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(taskList)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(taskList); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("%w: failed to marshal tasks to %s: %v", ErrPersistence, s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := writeFileSynced(tempFilePath, marshaledData); err != nil {
		return fmt.Errorf("%w: failed to write temporary data file %s: %v", ErrPersistence, tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := writeFileSynced(tempChecksumFilePath, []byte(actualChecksum)); err != nil {
		return fmt.Errorf("%w: failed to write temporary checksum file %s: %v", ErrPersistence, tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("%w: failed to rename temporary data file %s to %s: %v", ErrPersistence, tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		// The data file landed but its checksum did not. The next load would
		// compare new data against the stale sidecar, so this must surface.
		return fmt.Errorf("%w: data file %s updated but checksum file %s was not: %v", ErrPersistence, s.filePath, checksumFilePath, err)
	}

	return nil
}

// writeFileSynced writes data and fsyncs it before closing, so a rename that
// follows can never expose an empty or partial file after power loss.
func writeFileSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Save inserts or replaces a task by its ID. The candidate collection is
// persisted first and only swapped into memory once the write succeeded.
func (s *FileTaskStore) Save(task models.Task) error {
	if task.ID == "" {
		return fmt.Errorf("cannot save task with empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.tasks)
	next[task.ID] = task
	if err := s.persist(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// Get retrieves a task by its unique identifier.
func (s *FileTaskStore) Get(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return task, nil
}

// List returns a point-in-time copy of every task.
func (s *FileTaskStore) List() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	taskList := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		taskList = append(taskList, task)
	}
	return taskList, nil
}

// Delete removes a task by id. Deleting an unknown id is a no-op.
func (s *FileTaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; !exists {
		return nil
	}

	next := maps.Clone(s.tasks)
	delete(next, id)
	if err := s.persist(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// DeleteAll removes every task from the store.
// The command layer is expected to have confirmed with the user already.
func (s *FileTaskStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]models.Task)
	if err := s.persist(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// Backup copies the current task data to the specified destination path.
// The checksum sidecar is not copied; a restored backup gets a fresh one on
// its next save.
func (s *FileTaskStore) Backup(destinationPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}
	if err = os.WriteFile(destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current task data with data from the specified source
// path. The source is parsed before anything is replaced, so restoring an
// unreadable backup cannot destroy the current state.
func (s *FileTaskStore) Restore(sourcePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}

	var taskList models.TaskList
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(sourceData, &taskList)
	case formatYAML:
		err = yaml.Unmarshal(sourceData, &taskList)
	case formatTOML:
		err = toml.Unmarshal(sourceData, &taskList)
	default:
		return fmt.Errorf("unsupported data format for restore: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("%w: backup file %s cannot be parsed as %s: %v", ErrCorruptData, sourcePath, s.format, err)
	}

	tasks := make(map[string]models.Task, len(taskList.Tasks))
	for _, task := range taskList.Tasks {
		if _, dup := tasks[task.ID]; dup {
			return fmt.Errorf("%w: duplicate task id %s in backup %s", ErrCorruptData, task.ID, sourcePath)
		}
		tasks[task.ID] = task
	}

	if err := s.persist(tasks); err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// Close releases the file lock held by the store.
// flock.Unlock is idempotent and safe to call even if the lock is not held.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
