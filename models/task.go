package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllStatuses lists every status in a stable order, for grouping counts
// and for rendering.
var AllStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// AllPriorities lists every priority ordered by ascending severity.
var AllPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns the severity rank of a priority. Unknown priorities rank
// below low so they sort first and stand out.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

// Task represents a unit of work.
type Task struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required,uuid4"`
	Title       string       `json:"title" yaml:"title" toml:"title" validate:"required,max=255"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Priority    TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=low medium high urgent"`
	Status      TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=todo in-progress completed cancelled"`
	DueDate     *time.Time   `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	CompletedAt *time.Time   `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
}

// TaskList is the persisted document: a collection of tasks plus a count.
type TaskList struct {
	Tasks      []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount" yaml:"totalCount" toml:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		// Safeguard for tests running in isolation.
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// ValidateTask validates a task, including the rules the tag language cannot
// express: the title must survive whitespace trimming, and CompletedAt is set
// if and only if the task is completed.
func ValidateTask(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("validation failed on field 'Task.Title': title must not be blank")
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return fmt.Errorf("task %s is completed but has no completion time", t.ID)
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return fmt.Errorf("task %s has a completion time but status %q", t.ID, t.Status)
	}
	return ValidateStruct(t)
}
