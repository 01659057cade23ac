package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/twiced-technology-gmbh/gtd/internal/review"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

// TaskCompact renders tasks in a compact one-line-per-task format suitable
// for piping into grep and friends.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task as one line.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
}

// OverviewCompact renders a review summary as compact key=value lines.
func OverviewCompact(w io.Writer, s review.Overview) {
	fmt.Fprintf(w, "space=%s total=%d inbox=%d\n", s.SpaceName, s.TotalTasks, s.InboxCount)
	for _, bs := range s.Buckets {
		fmt.Fprintf(w, "bucket=%s count=%d overdue=%d stale=%d\n",
			bs.Bucket, bs.Count, bs.Overdue, bs.Stale)
	}
}

// formatTaskLine builds the compact representation of a task:
//
//	#12 [next] (high) Call the landlord @phone pro:apartment +urgent due:2026-03-01
func formatTaskLine(t *task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d [%s]", t.ID, t.Bucket)
	if t.Priority != "" {
		fmt.Fprintf(&b, " (%s)", t.Priority)
	}
	b.WriteByte(' ')
	b.WriteString(t.Title)
	if t.Context != "" {
		b.WriteByte(' ')
		b.WriteString(t.Context)
	}
	if t.Project != "" {
		fmt.Fprintf(&b, " pro:%s", t.Project)
	}
	for _, tag := range t.Tags {
		fmt.Fprintf(&b, " +%s", tag)
	}
	if t.Due != nil {
		fmt.Fprintf(&b, " due:%s", t.Due.String())
	}
	return b.String()
}
