package task

import (
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/models"
)

// Every query in this file computes over a single List snapshot, so the
// results within one call are consistent with each other and never block on
// the store's write path.

// Statistics summarizes the collection.
type Statistics struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}

func (s *Service) filter(keep func(models.Task) bool) ([]models.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// IsOverdue reports whether a task's due date has passed while the task is
// still actionable. Completed and cancelled tasks are never overdue.
func IsOverdue(t models.Task, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == models.StatusCompleted || t.Status == models.StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// MatchesKeyword reports whether the keyword appears in the task's title or
// description, case-insensitively. A blank keyword matches everything.
func MatchesKeyword(t models.Task, keyword string) bool {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return true
	}
	// Joined with a space so a keyword cannot match across the seam of the
	// two fields.
	haystack := strings.ToLower(t.Title + " " + t.Description)
	return strings.Contains(haystack, needle)
}

// SortTasks returns the slice ordered by the given comparator using a stable
// sort. The input slice is sorted in place and returned for convenience.
func SortTasks(tasks []models.Task, less func(a, b models.Task) bool) []models.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j])
	})
	return tasks
}

// ByStatus returns the tasks whose status matches exactly.
func (s *Service) ByStatus(status models.TaskStatus) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool {
		return t.Status == status
	})
}

// ByPriority returns the tasks whose priority matches exactly.
func (s *Service) ByPriority(priority models.TaskPriority) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool {
		return t.Priority == priority
	})
}

// Overdue returns the tasks with a due date in the past that are neither
// completed nor cancelled.
func (s *Service) Overdue() ([]models.Task, error) {
	now := s.now()
	return s.filter(func(t models.Task) bool {
		return IsOverdue(t, now)
	})
}

// Search returns the tasks whose title or description contains the keyword,
// case-insensitively. A blank keyword matches everything; that is the
// documented default, not an error.
func (s *Service) Search(keyword string) ([]models.Task, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.store.List()
	}
	return s.filter(func(t models.Task) bool {
		return MatchesKeyword(t, keyword)
	})
}

// Sorted returns a snapshot ordered by the given comparator. The sort is
// stable and never reorders anything inside the store.
func (s *Service) Sorted(less func(a, b models.Task) bool) ([]models.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return SortTasks(tasks, less), nil
}

// LessByPriority orders tasks by descending severity, most urgent first.
func LessByPriority(a, b models.Task) bool {
	return a.Priority.Rank() > b.Priority.Rank()
}

// LessByDueDate orders tasks by ascending due date; tasks without one sort
// last.
func LessByDueDate(a, b models.Task) bool {
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}

// LessByCreatedAt orders tasks oldest first.
func LessByCreatedAt(a, b models.Task) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

// Statistics computes the collection summary. The completion rate of an empty
// collection is 0, never a division fault.
func (s *Service) Statistics() (Statistics, error) {
	tasks, err := s.store.List()
	if err != nil {
		return Statistics{}, err
	}

	now := s.now()
	stats := Statistics{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			stats.Completed++
		}
		if IsOverdue(t, now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats, nil
}

// CountByStatus returns the task count for every status, including
// zero-count groups.
func (s *Service) CountByStatus() (map[models.TaskStatus]int, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskStatus]int, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		counts[status] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts, nil
}

// CountByPriority returns the task count for every priority, including
// zero-count groups.
func (s *Service) CountByPriority() (map[models.TaskPriority]int, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskPriority]int, len(models.AllPriorities))
	for _, priority := range models.AllPriorities {
		counts[priority] = 0
	}
	for _, t := range tasks {
		counts[t.Priority]++
	}
	return counts, nil
}
