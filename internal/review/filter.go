// Package review provides collection-level operations on tasks: filtering,
// sorting, grouping, and the review dashboard summary.
package review

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Buckets        []string
	ExcludeBuckets []string // buckets to exclude from results
	Priorities     []string
	Context        string
	Project        string
	Tag            string
	Search         string // case-insensitive substring match across title, body, and tags
	Overdue        bool   // only tasks with a due date in the past
	Now            time.Time
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if !matchesBucket(t.Bucket, opts.Buckets, opts.ExcludeBuckets) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsStr(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Context != "" && t.Context != opts.Context {
		return false
	}
	if opts.Project != "" && t.Project != opts.Project {
		return false
	}
	if opts.Tag != "" && !containsStr(t.Tags, opts.Tag) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		if !t.Overdue(now) {
			return false
		}
	}
	return true
}

func matchesBucket(bucket string, include, exclude []string) bool {
	if len(include) > 0 && !containsStr(include, bucket) {
		return false
	}
	if len(exclude) > 0 && containsStr(exclude, bucket) {
		return false
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across title, body, and tags.
func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Body), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
