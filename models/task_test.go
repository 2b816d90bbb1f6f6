package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTask_ValidateTask(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid task",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "Valid Task Title",
				Status:    StatusTodo,
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: false,
		},
		{
			name: "empty title",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "",
				Status:    StatusTodo,
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "whitespace-only title",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "   \t ",
				Status:    StatusTodo,
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "Valid Task Title",
				Status:    "invalid-status",
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "invalid priority",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "Valid Task Title",
				Status:    StatusTodo,
				Priority:  "invalid-priority",
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "invalid UUID",
			task: Task{
				ID:        "not-a-uuid",
				Title:     "Valid Task Title",
				Status:    StatusTodo,
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "completed without completion time",
			task: Task{
				ID:        uuid.New().String(),
				Title:     "Valid Task Title",
				Status:    StatusCompleted,
				Priority:  PriorityMedium,
				CreatedAt: now,
			},
			wantErr: true,
		},
		{
			name: "completion time on a todo task",
			task: Task{
				ID:          uuid.New().String(),
				Title:       "Valid Task Title",
				Status:      StatusTodo,
				Priority:    PriorityMedium,
				CreatedAt:   now,
				CompletedAt: &now,
			},
			wantErr: true,
		},
		{
			name: "completed with completion time",
			task: Task{
				ID:          uuid.New().String(),
				Title:       "Valid Task Title",
				Status:      StatusCompleted,
				Priority:    PriorityHigh,
				CreatedAt:   now,
				CompletedAt: &now,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskPriority_Rank(t *testing.T) {
	ordered := []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("expected %s to rank below %s", ordered[i-1], ordered[i])
		}
	}
	if TaskPriority("bogus").Rank() >= PriorityLow.Rank() {
		t.Error("unknown priority should rank below low")
	}
}
