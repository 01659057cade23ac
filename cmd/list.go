package cmd

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/review"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("bucket", nil, "filter by bucket (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().String("context", "", "filter by context (e.g. @home)")
	listCmd.Flags().String("project", "", "filter by project")
	listCmd.Flags().String("tag", "", "filter by tag")
	listCmd.Flags().Bool("overdue", false, "show only overdue tasks")
	listCmd.Flags().StringP("search", "s", "", "search tasks by title, body, or tags (case-insensitive)")
	listCmd.Flags().Bool("archived", false, "show only archived tasks")
	listCmd.Flags().String("sort", "id", "sort field (id, bucket, priority, created, updated, due)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(review.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	buckets, _ := cmd.Flags().GetStringSlice("bucket")
	priorities, _ := cmd.Flags().GetStringSlice("priority")
	context, _ := cmd.Flags().GetString("context")
	proj, _ := cmd.Flags().GetString("project")
	tag, _ := cmd.Flags().GetString("tag")
	overdue, _ := cmd.Flags().GetBool("overdue")
	search, _ := cmd.Flags().GetString("search")
	archived, _ := cmd.Flags().GetBool("archived")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if groupBy != "" && !slices.Contains(review.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidGroupBy, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(review.ValidGroupByFields(), ", "))
	}

	if context != "" && !strings.HasPrefix(context, "@") {
		context = "@" + context
	}

	filter := review.FilterOptions{
		Buckets:    buckets,
		Priorities: priorities,
		Context:    context,
		Project:    proj,
		Tag:        tag,
		Search:     search,
		Overdue:    overdue,
		Now:        time.Now(),
	}

	// --archived flag: show only archived tasks.
	// Default (no --bucket, no --archived): exclude archived.
	if archived {
		filter.Buckets = []string{config.ArchivedBucket}
	} else if !cmd.Flags().Changed("bucket") {
		filter.ExcludeBuckets = []string{config.ArchivedBucket}
	}

	opts := review.ListOptions{
		Filter:  filter,
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	}

	tasks, warnings, err := review.List(cfg, opts)
	if err != nil {
		return err
	}
	printWarnings(warnings)

	if groupBy != "" {
		return outputGroupedList(tasks, groupBy, cfg)
	}

	return outputTaskList(tasks)
}

func outputGroupedList(tasks []*task.Task, groupBy string, cfg *config.Config) error {
	grouped := review.GroupBy(tasks, groupBy, cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, grouped)
	}
	output.GroupedTable(os.Stdout, grouped)
	return nil
}

func outputTaskList(tasks []*task.Task) error {
	switch outputFormat() {
	case output.FormatJSON:
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
		return nil
	default:
		output.TaskTable(os.Stdout, tasks)
		return nil
	}
}
