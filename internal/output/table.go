package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/gtd/internal/review"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Bucket colors aligned with TUI column-header palette.
	bucketStyles = map[string]lipgloss.Style{
		"inbox":    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"next":     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"waiting":  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		"someday":  lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		"done":     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"archived": lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	bucketStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	tagStyle = lipgloss.NewStyle()
	contextStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, bucketW, prioW, titleW, ctxW, projW, tagsW, dueW := 4, 8, 10, 5, 9, 9, 6, 12
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		bucketW = max(bucketW, len(t.Bucket)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		ctxW = max(ctxW, len(t.Context)+pad)
		projW = max(projW, min(len(t.Project)+pad, 20)) //nolint:mnd // max project column width
		tagsW = max(tagsW, min(len(strings.Join(t.Tags, ","))+pad, 30)) //nolint:mnd // max tags column width
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %-*s %-*s",
		idW, "ID", bucketW, "BUCKET", prioW, "PRIORITY",
		titleW, "TITLE", ctxW, "CONTEXT", projW, "PROJECT", tagsW, "TAGS", dueW, "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	now := time.Now()

	// Print rows.
	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		ctx := t.Context
		if ctx == "" {
			ctx = dimStyle.Render("--")
		} else {
			ctx = contextStyle.Render(ctx)
		}
		proj := t.Project
		if proj == "" {
			proj = dimStyle.Render("--")
		}
		tags := strings.Join(t.Tags, ",")
		if tags == "" {
			tags = dimStyle.Render("--")
		} else {
			tags = tagStyle.Render(tags)
		}
		due := dimStyle.Render("--")
		if t.Due != nil {
			due = t.Due.String()
			if t.Overdue(now) {
				due = overdueStyle.Render(due)
			}
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s %s %s",
			idW, t.ID,
			padRight(styledValue(t.Bucket, bucketStyles), bucketW),
			padRight(styledValue(t.Priority, priorityStyles), prioW),
			padRight(title, titleW),
			padRight(ctx, ctxW),
			padRight(proj, projW),
			padRight(tags, tagsW),
			due)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. The body is printed
// separately by the caller (which may render it as markdown).
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Bucket", styledValue(t.Bucket, bucketStyles))
	if t.Priority != "" {
		printField(w, "Priority", styledValue(t.Priority, priorityStyles))
	} else {
		printField(w, "Priority", dimStyle.Render("--"))
	}
	if t.Context != "" {
		printField(w, "Context", contextStyle.Render(t.Context))
	} else {
		printField(w, "Context", dimStyle.Render("--"))
	}
	printField(w, "Project", stringOrDash(t.Project))
	if len(t.Tags) > 0 {
		printField(w, "Tags", tagStyle.Render(strings.Join(t.Tags, ", ")))
	} else {
		printField(w, "Tags", dimStyle.Render("--"))
	}
	if t.Due != nil {
		due := t.Due.String()
		if t.Overdue(time.Now()) {
			due = overdueStyle.Render(due + " (overdue)")
		}
		printField(w, "Due", due)
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	printField(w, "Created", t.Created.Format("2006-01-02 15:04"))
	printField(w, "Updated", t.Updated.Format("2006-01-02 15:04"))
	if t.Completed != nil {
		printField(w, "Completed", t.Completed.Format("2006-01-02 15:04"))
		printField(w, "Lead time", FormatDuration(t.Completed.Sub(t.Created)))
	}
}

// OverviewTable renders a review summary as a formatted dashboard.
func OverviewTable(w io.Writer, s review.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(s.SpaceName))
	fmt.Fprintf(w, "Total: %d tasks | Inbox: %d\n\n", s.TotalTasks, s.InboxCount)

	header := fmt.Sprintf("%-16s %6s %8s %8s", "BUCKET", "COUNT", "OVERDUE", "STALE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, bs := range s.Buckets {
		const bucketColW = 16
		fmt.Fprintf(w, "%s %6d %8d %8d\n",
			padRight(styledValue(bs.Bucket, bucketStyles), bucketColW),
			bs.Count, bs.Overdue, bs.Stale)
	}

	fmt.Fprintln(w)
	prioHeader := fmt.Sprintf("%-16s %6s", "PRIORITY", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(prioHeader))

	for _, pc := range s.Priorities {
		const prioColW = 16
		fmt.Fprintf(w, "%s %6d\n",
			padRight(styledValue(pc.Priority, priorityStyles), prioColW), pc.Count)
	}

	if len(s.Contexts) > 0 {
		fmt.Fprintln(w)
		ctxHeader := fmt.Sprintf("%-16s %6s", "CONTEXT", "COUNT")
		fmt.Fprintln(w, headerStyle.Render(ctxHeader))
		for _, cc := range s.Contexts {
			const ctxColW = 16
			fmt.Fprintf(w, "%s %6d\n",
				padRight(contextStyle.Render(cc.Context), ctxColW), cc.Count)
		}
	}
}

// GroupedTable renders a grouped view with per-group bucket breakdowns.
func GroupedTable(w io.Writer, gs review.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))

		for _, bs := range g.Buckets {
			if bs.Count == 0 {
				continue
			}
			const groupBucketW = 16
			fmt.Fprintf(w, "  %s %d\n",
				padRight(styledValue(bs.Bucket, bucketStyles), groupBucketW), bs.Count)
		}
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// FormatDuration renders a duration as human-readable "Xd Yh" or "Xh Ym".
func FormatDuration(d time.Duration) string {
	const hoursPerDay = 24
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if days > 0 {
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h"
	}
	minutes := int(d.Minutes()) % 60 //nolint:mnd // 60 minutes per hour
	return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
