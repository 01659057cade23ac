package review

import (
	"sort"

	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

const (
	fieldPriority = "priority"
	fieldBucket   = "bucket"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key     string          `json:"key"`
	Buckets []BucketSummary `json:"buckets"`
	Total   int             `json:"total"`
}

// GroupBy groups tasks by the specified field and returns summaries per group.
func GroupBy(tasks []*task.Task, field string, cfg *config.Config) GroupedSummary {
	groups := make(map[string][]*task.Task)

	for _, t := range tasks {
		keys := extractGroupKeys(t, field)
		for _, key := range keys {
			groups[key] = append(groups[key], t)
		}
	}

	sortedKeys := sortGroupKeys(groups, field, cfg)

	result := GroupedSummary{
		Groups: make([]GroupSummary, 0, len(sortedKeys)),
	}
	for _, key := range sortedKeys {
		groupTasks := groups[key]
		buckets := groupBucketSummary(groupTasks, cfg)
		result.Groups = append(result.Groups, GroupSummary{
			Key:     key,
			Buckets: buckets,
			Total:   len(groupTasks),
		})
	}
	return result
}

func extractGroupKeys(t *task.Task, field string) []string {
	switch field {
	case "context":
		if t.Context == "" {
			return []string{"(no context)"}
		}
		return []string{t.Context}
	case "project":
		if t.Project == "" {
			return []string{"(no project)"}
		}
		return []string{t.Project}
	case "tag":
		if len(t.Tags) == 0 {
			return []string{"(untagged)"}
		}
		return t.Tags
	case fieldPriority:
		return []string{t.Priority}
	case fieldBucket:
		return []string{t.Bucket}
	default:
		return []string{"(all)"}
	}
}

func sortGroupKeys(groups map[string][]*task.Task, field string, cfg *config.Config) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case fieldBucket:
		sort.SliceStable(keys, func(i, j int) bool {
			return cfg.BucketIndex(keys[i]) < cfg.BucketIndex(keys[j])
		})
	case fieldPriority:
		sort.SliceStable(keys, func(i, j int) bool {
			return cfg.PriorityIndex(keys[i]) < cfg.PriorityIndex(keys[j])
		})
	default:
		sort.Strings(keys)
	}
	return keys
}

func groupBucketSummary(tasks []*task.Task, cfg *config.Config) []BucketSummary {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Bucket]++
	}
	buckets := make([]BucketSummary, 0, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		buckets = append(buckets, BucketSummary{
			Bucket: b,
			Count:  counts[b],
		})
	}
	return buckets
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{"bucket", "context", "project", "tag", "priority"}
}
