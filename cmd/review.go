package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/review"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
	"github.com/twiced-technology-gmbh/gtd/internal/watcher"
)

var flagWatch bool

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"summary"},
	Short:   "Show the review dashboard",
	Long: `Displays a summary of the space: task counts per bucket, overdue and
stale counts, and priority and context distributions.

Use --stale to list the tasks that have gone untouched the longest; these are
the candidates for a weekly review. Use --watch to keep the display
live-updating as task files change on disk. Press Ctrl+C to stop.`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the dashboard on file changes")
	reviewCmd.Flags().Bool("stale", false, "list stale tasks, oldest first")
	reviewCmd.Flags().String("group-by", "", "group dashboard by field ("+strings.Join(review.ValidGroupByFields(), ", ")+")")
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	groupBy, _ := cmd.Flags().GetString("group-by")
	if groupBy != "" && !slices.Contains(review.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidGroupBy, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(review.ValidGroupByFields(), ", "))
	}

	stale, _ := cmd.Flags().GetBool("stale")

	// Render once.
	if err := renderReview(cfg, groupBy, stale); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}

	return watchReview(cfg, groupBy, stale)
}

func renderReview(cfg *config.Config, groupBy string, stale bool) error {
	tasks, warnings, err := task.ReadAllLenient(cfg.TasksPath())
	if err != nil {
		return err
	}
	printWarnings(warnings)
	if tasks == nil {
		tasks = []*task.Task{}
	}

	// Exclude archived tasks from review.
	var activeTasks []*task.Task
	for _, t := range tasks {
		if !cfg.IsArchivedBucket(t.Bucket) {
			activeTasks = append(activeTasks, t)
		}
	}

	if stale {
		return renderStale(cfg, activeTasks)
	}
	if groupBy != "" {
		return renderGroupedReview(cfg, activeTasks, groupBy)
	}

	summary := review.Summary(cfg, activeTasks, time.Now())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, summary)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, summary)
		return nil
	}

	output.OverviewTable(os.Stdout, summary)
	return nil
}

func renderStale(cfg *config.Config, tasks []*task.Task) error {
	staleTasks := review.Stale(cfg, tasks, time.Now())

	if outputFormat() == output.FormatJSON {
		if staleTasks == nil {
			staleTasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, staleTasks)
	}

	if len(staleTasks) == 0 {
		output.Messagef(os.Stdout, "No stale tasks. Everything has been touched within %s.", cfg.Review.StaleAfter)
		return nil
	}
	return outputTaskList(staleTasks)
}

func renderGroupedReview(cfg *config.Config, tasks []*task.Task, groupBy string) error {
	grouped := review.GroupBy(tasks, groupBy, cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, grouped)
	}

	output.GroupedTable(os.Stdout, grouped)
	return nil
}

func watchReview(cfg *config.Config, groupBy string, stale bool) error {
	// Watch both the tasks directory and the config file's directory.
	watchPaths := []string{cfg.TasksPath(), cfg.Dir()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(watchPaths, func() {
		clearScreen()
		// Re-load config in case buckets or review settings changed.
		freshCfg, loadErr := config.Load(cfg.Dir())
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading config: %v\n", loadErr)
			freshCfg = cfg
		}
		if renderErr := renderReview(freshCfg, groupBy, stale); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering review: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
