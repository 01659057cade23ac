package task

import (
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

func TestUpdateTimestamps(t *testing.T) {
	cfg := config.NewDefault("test")

	t.Run("completing sets Completed", func(t *testing.T) {
		task := &Task{Bucket: "next"}
		UpdateTimestamps(task, "next", "done", cfg)
		if task.Completed == nil {
			t.Fatal("Completed not set")
		}
	})

	t.Run("archiving sets Completed", func(t *testing.T) {
		task := &Task{Bucket: "waiting"}
		UpdateTimestamps(task, "waiting", "archived", cfg)
		if task.Completed == nil {
			t.Fatal("Completed not set")
		}
	})

	t.Run("existing Completed is preserved", func(t *testing.T) {
		earlier := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		task := &Task{Bucket: "done", Completed: &earlier}
		UpdateTimestamps(task, "done", "archived", cfg)
		if task.Completed == nil || !task.Completed.Equal(earlier) {
			t.Errorf("Completed changed: %v", task.Completed)
		}
	})

	t.Run("reopening clears Completed", func(t *testing.T) {
		now := time.Now()
		task := &Task{Bucket: "done", Completed: &now}
		UpdateTimestamps(task, "done", "next", cfg)
		if task.Completed != nil {
			t.Errorf("Completed not cleared: %v", task.Completed)
		}
	})

	t.Run("move between active buckets is a no-op", func(t *testing.T) {
		task := &Task{Bucket: "inbox"}
		UpdateTimestamps(task, "inbox", "next", cfg)
		if task.Completed != nil {
			t.Errorf("Completed set unexpectedly: %v", task.Completed)
		}
	})
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	past := date.New(2026, time.March, 9)
	today := date.New(2026, time.March, 10)
	future := date.New(2026, time.March, 11)

	tests := []struct {
		name string
		task *Task
		want bool
	}{
		{"no due date", &Task{}, false},
		{"due yesterday", &Task{Due: &past}, true},
		{"due today is not overdue", &Task{Due: &today}, false},
		{"due tomorrow", &Task{Due: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue = %v, want %v", got, tt.want)
			}
		})
	}
}
