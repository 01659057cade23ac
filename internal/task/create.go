package task

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/filelock"
)

// lockFileName guards next_id allocation inside a space directory.
const lockFileName = ".lock"

// Create allocates an ID for t, writes the task file, and persists the
// incremented next_id. The whole sequence runs under an exclusive lock so
// concurrent captures never hand out the same ID. The config is reloaded
// inside the critical section to pick up allocations made by other
// processes since cfg was read.
func Create(cfg *config.Config, t *Task) error {
	lockPath := filepath.Join(cfg.Dir(), lockFileName)
	return filelock.WithLock(lockPath, func() error {
		fresh, err := config.Load(cfg.Dir())
		if err != nil {
			return err
		}

		now := time.Now()
		t.ID = fresh.NextID
		t.Created = now
		t.Updated = now
		if t.Bucket == "" {
			t.Bucket = fresh.Defaults.Bucket
		}
		if t.Priority == "" {
			t.Priority = fresh.Defaults.Priority
		}

		filename := GenerateFilename(t.ID, GenerateSlug(t.Title))
		path := filepath.Join(fresh.TasksPath(), filename)
		if err := Write(path, t); err != nil {
			return fmt.Errorf("writing task: %w", err)
		}
		t.File = path

		fresh.NextID++
		if err := fresh.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cfg.NextID = fresh.NextID
		return nil
	})
}
