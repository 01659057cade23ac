package review

import (
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List loads all tasks, applies filters and sorting.
// Uses lenient parsing: malformed task files are skipped and returned as warnings.
func List(cfg *config.Config, opts ListOptions) ([]*task.Task, []task.ReadWarning, error) {
	allTasks, warnings, err := task.ReadAllLenient(cfg.TasksPath())
	if err != nil {
		return nil, nil, err
	}

	tasks := Filter(allTasks, opts.Filter)

	sortField := opts.SortBy
	if sortField == "" {
		sortField = "id"
	}
	Sort(tasks, sortField, opts.Reverse, cfg)

	if opts.Limit > 0 && len(tasks) > opts.Limit {
		tasks = tasks[:opts.Limit]
	}

	return tasks, warnings, nil
}

// BucketSummary holds metrics for a single bucket.
type BucketSummary struct {
	Bucket  string `json:"bucket"`
	Count   int    `json:"count"`
	Overdue int    `json:"overdue"`
	Stale   int    `json:"stale"`
}

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// ContextCount holds a count for a context.
type ContextCount struct {
	Context string `json:"context"`
	Count   int    `json:"count"`
}

// Overview is the aggregate review dashboard.
type Overview struct {
	SpaceName  string          `json:"space_name"`
	TotalTasks int             `json:"total_tasks"`
	InboxCount int             `json:"inbox_count"`
	Buckets    []BucketSummary `json:"buckets"`
	Priorities []PriorityCount `json:"priorities"`
	Contexts   []ContextCount  `json:"contexts,omitempty"`
}

// Summary computes a review overview from all tasks. It uses BoardBuckets()
// to exclude the archived bucket from display. A task is stale when it has
// not been updated within staleAfter and is not in a terminal bucket.
func Summary(cfg *config.Config, tasks []*task.Task, now time.Time) Overview {
	displayBuckets := cfg.BoardBuckets()
	bucketMap := make(map[string]*BucketSummary, len(displayBuckets))
	for _, b := range displayBuckets {
		bucketMap[b] = &BucketSummary{Bucket: b}
	}

	staleAfter := cfg.StaleAfterDuration()
	prioMap := make(map[string]int, len(cfg.Priorities))
	ctxMap := make(map[string]int, len(cfg.Contexts))

	for _, t := range tasks {
		if bs, ok := bucketMap[t.Bucket]; ok {
			bs.Count++
			if !cfg.IsTerminalBucket(t.Bucket) {
				if t.Overdue(now) {
					bs.Overdue++
				}
				if now.Sub(t.Updated) > staleAfter {
					bs.Stale++
				}
			}
		}
		if t.Priority != "" {
			prioMap[t.Priority]++
		}
		if t.Context != "" {
			ctxMap[t.Context]++
		}
	}

	buckets := make([]BucketSummary, 0, len(displayBuckets))
	for _, b := range displayBuckets {
		buckets = append(buckets, *bucketMap[b])
	}

	priorities := make([]PriorityCount, 0, len(cfg.Priorities))
	for _, p := range cfg.Priorities {
		priorities = append(priorities, PriorityCount{Priority: p, Count: prioMap[p]})
	}

	var contexts []ContextCount
	for _, c := range cfg.Contexts {
		if ctxMap[c] > 0 {
			contexts = append(contexts, ContextCount{Context: c, Count: ctxMap[c]})
		}
	}

	inbox := 0
	if bs, ok := bucketMap[config.DefaultBucket]; ok {
		inbox = bs.Count
	}

	return Overview{
		SpaceName:  cfg.Space.Name,
		TotalTasks: len(tasks),
		InboxCount: inbox,
		Buckets:    buckets,
		Priorities: priorities,
		Contexts:   contexts,
	}
}

// Stale returns non-terminal tasks that have not been touched within
// staleAfter, oldest first. These are the weekly-review candidates.
func Stale(cfg *config.Config, tasks []*task.Task, now time.Time) []*task.Task {
	staleAfter := cfg.StaleAfterDuration()
	var result []*task.Task
	for _, t := range tasks {
		if cfg.IsTerminalBucket(t.Bucket) {
			continue
		}
		if now.Sub(t.Updated) > staleAfter {
			result = append(result, t)
		}
	}
	Sort(result, "updated", false, cfg)
	return result
}

// ParseIDs splits a comma-separated ID string into deduplicated int IDs.
func ParseIDs(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int]bool, len(parts))
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, task.ValidateTaskID(p)
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
