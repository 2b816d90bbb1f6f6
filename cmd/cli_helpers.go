package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/models"
)

// parseDueDate parses a due date flag value. It accepts a plain date
// (2006-01-02) or a full RFC 3339 timestamp. An empty string means no due
// date.
func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD or RFC 3339", value)
}

// parsePriority parses a priority flag value. An empty string yields the
// empty priority, which the service treats as "use the default".
func parsePriority(value string) (models.TaskPriority, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	for _, p := range models.AllPriorities {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q: valid values are %s", value, joinPriorities())
}

// parseStatus parses a status flag value.
func parseStatus(value string) (models.TaskStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	for _, s := range models.AllStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: valid values are %s", value, joinStatuses())
}

func joinPriorities() string {
	parts := make([]string, len(models.AllPriorities))
	for i, p := range models.AllPriorities {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

func joinStatuses() string {
	parts := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
