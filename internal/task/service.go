// Package task owns the business rules of the task collection: validated
// mutation, completion state transitions, and every derived read (filters,
// search, sorting, statistics). Persistence is delegated to an injected
// store.TaskStore; the service holds no state of its own beyond a clock.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// Service encapsulates all business logic for managing tasks.
type Service struct {
	store store.TaskStore
	// now is swappable so tests can pin the clock.
	now func() time.Time
}

// NewService creates a new task Service over the given store.
func NewService(s store.TaskStore) *Service {
	return &Service{
		store: s,
		now:   time.Now,
	}
}

// WithClock replaces the service's time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the current time from the service's clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Create validates the input, assigns identity and creation time, and
// persists a new task with status todo. A blank title fails with
// ErrValidation. An empty priority defaults to medium.
func (s *Service) Create(title, description string, priority models.TaskPriority, due *time.Time) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      models.StatusTodo,
		DueDate:     due,
		CreatedAt:   s.now().UTC(),
	}

	if err := models.ValidateTask(t); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.store.Save(t); err != nil {
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return t, nil
}

// Update replaces the mutable fields of an existing task: title, description,
// priority, and due date. ID, CreatedAt, Status, and CompletedAt are never
// touched; status changes go through MarkComplete and MarkIncomplete so the
// completion invariant stays enforceable in one place.
func (s *Service) Update(id, title, description string, priority models.TaskPriority, due *time.Time) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	t, err := s.store.Get(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	t.Title = title
	t.Description = description
	if priority != "" {
		t.Priority = priority
	}
	t.DueDate = due

	if err := models.ValidateTask(t); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.store.Save(t); err != nil {
		return models.Task{}, fmt.Errorf("failed to save updated task: %w", err)
	}
	return t, nil
}

// MarkComplete sets the task's status to completed and records the completion
// time. It is idempotent: completing an already-completed task keeps the
// original CompletedAt, so the timestamp always reflects first completion.
func (s *Service) MarkComplete(id string) (models.Task, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to mark task complete: %w", err)
	}

	if t.Status == models.StatusCompleted && t.CompletedAt != nil {
		return t, nil
	}

	now := s.now().UTC()
	t.Status = models.StatusCompleted
	t.CompletedAt = &now

	if err := s.store.Save(t); err != nil {
		return models.Task{}, fmt.Errorf("failed to save completed task: %w", err)
	}
	return t, nil
}

// MarkIncomplete returns a task to todo and clears its completion time,
// regardless of prior status. Already-todo tasks pass through unchanged.
func (s *Service) MarkIncomplete(id string) (models.Task, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to mark task incomplete: %w", err)
	}

	if t.Status == models.StatusTodo && t.CompletedAt == nil {
		return t, nil
	}

	t.Status = models.StatusTodo
	t.CompletedAt = nil

	if err := s.store.Save(t); err != nil {
		return models.Task{}, fmt.Errorf("failed to save reopened task: %w", err)
	}
	return t, nil
}

// SetStatus moves a task to todo, in-progress, or cancelled. These are plain
// field edits with no timestamp side effects; completed routes through
// MarkComplete so the completion invariant holds.
func (s *Service) SetStatus(id string, status models.TaskStatus) (models.Task, error) {
	if status == models.StatusCompleted {
		return s.MarkComplete(id)
	}
	if status != models.StatusTodo && status != models.StatusInProgress && status != models.StatusCancelled {
		return models.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	t, err := s.store.Get(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to set task status: %w", err)
	}

	t.Status = status
	t.CompletedAt = nil

	if err := s.store.Save(t); err != nil {
		return models.Task{}, fmt.Errorf("failed to save task status: %w", err)
	}
	return t, nil
}

// Get retrieves a single task by id.
func (s *Service) Get(id string) (models.Task, error) {
	return s.store.Get(id)
}

// List returns a snapshot of every task.
func (s *Service) List() ([]models.Task, error) {
	return s.store.List()
}

// Delete removes a task. Deleting an unknown id is a no-op.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// DeleteAll removes every task.
func (s *Service) DeleteAll() error {
	return s.store.DeleteAll()
}
