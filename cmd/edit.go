package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/project"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("bucket", "", "new bucket")
	editCmd.Flags().String("priority", "", "new priority")
	editCmd.Flags().String("context", "", "new context (e.g. @home)")
	editCmd.Flags().Bool("clear-context", false, "clear context")
	editCmd.Flags().String("project", "", "new project")
	editCmd.Flags().Bool("clear-project", false, "clear project")
	editCmd.Flags().StringSlice("add-tag", nil, "add tags")
	editCmd.Flags().StringSlice("remove-tag", nil, "remove tags")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-due", false, "clear due date")
	editCmd.Flags().String("body", "", "new body text (replaces entire body)")
	editCmd.Flags().StringP("append-body", "a", "", "append text to task body")
	editCmd.Flags().BoolP("timestamp", "t", false, "prefix a timestamp line when appending")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Single ID: full output.
	if len(ids) == 1 {
		return editSingleTask(cfg, ids[0], cmd)
	}

	// Batch mode.
	return runBatch(ids, func(id int) error {
		_, _, err := executeEdit(cfg, id, cmd)
		return err
	})
}

// editSingleTask handles a single task edit with full output.
func editSingleTask(cfg *config.Config, id int, cmd *cobra.Command) error {
	t, newPath, err := executeEdit(cfg, id, cmd)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		t.File = newPath
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Title)
	return nil
}

// executeEdit performs the core edit: find, read, apply, write, log.
// Returns the modified task and its new file path.
func executeEdit(cfg *config.Config, id int, cmd *cobra.Command) (*task.Task, string, error) {
	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return nil, "", err
	}

	t, err := task.Read(path)
	if err != nil {
		return nil, "", err
	}

	oldTitle := t.Title
	oldBucket := t.Bucket
	changed, err := applyEditFlags(cmd, t, cfg)
	if err != nil {
		return nil, "", err
	}

	if !changed {
		return nil, "", clierr.New(clierr.NoChanges, "no changes specified")
	}

	if t.Bucket != oldBucket {
		task.UpdateTimestamps(t, oldBucket, t.Bucket, cfg)
	}
	t.Updated = time.Now()

	newPath, err := writeAndRename(path, t, oldTitle)
	if err != nil {
		return nil, "", err
	}

	logActivity(cfg, "edit", t.ID, t.Title)
	return t, newPath, nil
}

// writeAndRename writes the task and renames the file if the title changed.
func writeAndRename(path string, t *task.Task, oldTitle string) (string, error) {
	newPath := path
	if t.Title != oldTitle {
		slug := task.GenerateSlug(t.Title)
		filename := task.GenerateFilename(t.ID, slug)
		newPath = filepath.Join(filepath.Dir(path), filename)
	}

	if err := task.Write(newPath, t); err != nil {
		return "", fmt.Errorf("writing task: %w", err)
	}

	if newPath != path {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("removing old file: %w", err)
		}
	}
	return newPath, nil
}

func applyEditFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) (bool, error) {
	changed, err := applySimpleEditFlags(cmd, t, cfg)
	if err != nil {
		return false, err
	}

	for _, fn := range []func(*cobra.Command, *task.Task) (bool, error){
		applyTagDueFlags,
		applyBodyFlags,
	} {
		c, fnErr := fn(cmd, t)
		if fnErr != nil {
			return false, fnErr
		}
		if c {
			changed = true
		}
	}

	return changed, nil
}

func applySimpleEditFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) (bool, error) {
	changed := false

	if v, _ := cmd.Flags().GetString("title"); v != "" {
		t.Title = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("bucket"); v != "" {
		if err := task.ValidateBucket(v, cfg.Buckets); err != nil {
			return false, err
		}
		t.Bucket = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := task.ValidatePriority(v, cfg.Priorities); err != nil {
			return false, err
		}
		t.Priority = v
		changed = true
	}

	contextSet := cmd.Flags().Changed("context")
	clearContext, _ := cmd.Flags().GetBool("clear-context")
	if contextSet && clearContext {
		return false, clierr.New(clierr.FlagConflict, "cannot use --context and --clear-context together")
	}
	if contextSet {
		v, _ := cmd.Flags().GetString("context")
		if !strings.HasPrefix(v, "@") {
			v = "@" + v
		}
		if err := task.ValidateContext(v, cfg.Contexts); err != nil {
			return false, err
		}
		t.Context = v
		changed = true
	}
	if clearContext {
		t.Context = ""
		changed = true
	}

	projectSet := cmd.Flags().Changed("project")
	clearProject, _ := cmd.Flags().GetBool("clear-project")
	if projectSet && clearProject {
		return false, clierr.New(clierr.FlagConflict, "cannot use --project and --clear-project together")
	}
	if projectSet {
		v, _ := cmd.Flags().GetString("project")
		projects, err := project.ReadAll(cfg.ProjectsPath())
		if err != nil {
			return false, err
		}
		if p := project.Resolve(projects, v); p != nil {
			v = p.Title
		}
		t.Project = v
		changed = true
	}
	if clearProject {
		t.Project = ""
		changed = true
	}

	return changed, nil
}

func applyTagDueFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	changed := false

	if v, _ := cmd.Flags().GetStringSlice("add-tag"); len(v) > 0 {
		t.Tags = appendUnique(t.Tags, v...)
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-tag"); len(v) > 0 {
		t.Tags = removeAll(t.Tags, v...)
		changed = true
	}

	dueSet := cmd.Flags().Changed("due")
	clearDue, _ := cmd.Flags().GetBool("clear-due")
	if dueSet && clearDue {
		return false, clierr.New(clierr.FlagConflict, "cannot use --due and --clear-due together")
	}
	if dueSet {
		v, _ := cmd.Flags().GetString("due")
		d, err := date.Parse(v)
		if err != nil {
			return false, task.FormatDueDate(v, err)
		}
		t.Due = &d
		changed = true
	}
	if clearDue {
		t.Due = nil
		changed = true
	}

	return changed, nil
}

func applyBodyFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	bodySet := cmd.Flags().Changed("body")
	appendSet := cmd.Flags().Changed("append-body")
	if bodySet && appendSet {
		return false, clierr.New(clierr.FlagConflict, "cannot use --body and --append-body together")
	}
	if bodySet {
		v, _ := cmd.Flags().GetString("body")
		t.Body = v
		return true, nil
	}
	if appendSet {
		v, _ := cmd.Flags().GetString("append-body")
		ts, _ := cmd.Flags().GetBool("timestamp")
		t.Body = appendBody(t.Body, v, ts)
		return true, nil
	}
	return false, nil
}

func appendUnique(slice []string, items ...string) []string {
	seen := make(map[string]bool, len(slice))
	for _, s := range slice {
		seen[s] = true
	}
	for _, item := range items {
		if !seen[item] {
			slice = append(slice, item)
			seen[item] = true
		}
	}
	return slice
}

func removeAll(slice []string, items ...string) []string {
	remove := make(map[string]bool, len(items))
	for _, item := range items {
		remove[item] = true
	}
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		if !remove[s] {
			result = append(result, s)
		}
	}
	return result
}

// appendBody appends text to the existing body, optionally prefixed with a timestamp line.
func appendBody(existing, text string, addTimestamp bool) string {
	var b strings.Builder

	if existing != "" {
		b.WriteString(strings.TrimRight(existing, "\n"))
		b.WriteString("\n\n")
	}

	if addTimestamp {
		now := time.Now()
		b.WriteString(now.Format("[[2006-01-02]] Mon 15:04"))
		b.WriteByte('\n')
	}

	b.WriteString(text)

	return b.String()
}
