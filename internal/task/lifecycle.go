package task

import (
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/config"
)

// UpdateTimestamps sets Completed based on the bucket transition.
//   - Sets Completed on a move into a terminal bucket (done or archived).
//   - Clears Completed when moving back out of a terminal bucket (reopening).
func UpdateTimestamps(t *Task, oldBucket, newBucket string, cfg *config.Config) {
	now := time.Now()

	if cfg.IsTerminalBucket(newBucket) {
		if t.Completed == nil {
			t.Completed = &now
		}
	} else if cfg.IsTerminalBucket(oldBucket) {
		// Reopening: clear Completed.
		t.Completed = nil
	}
}
