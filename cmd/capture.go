package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/capture"
	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/project"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var captureCmd = &cobra.Command{
	Use:     "capture TEXT...",
	Aliases: []string{"c", "in"},
	Short:   "Capture a task from natural shorthand",
	Long: `Captures a task from free-form text with inline shorthand tokens.

Recognized tokens (anywhere in the text):
  !H !M !L or pri:H      priority
  @home @work @computer @phone @errands @anywhere
                         context
  pro:NAME               project
  due:today due:tomorrow due:+3d due:2026-03-01
                         due date
  +word                  tag (repeatable)
  >next >wait >someday   target bucket (default: inbox)

Everything left over becomes the title. Quoting is optional; all
arguments are joined with spaces before parsing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().Bool("dry-run", false, "parse only; print the draft without creating a task")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	raw := strings.TrimSpace(strings.Join(args, " "))
	if raw == "" {
		return clierr.New(clierr.InvalidInput, "nothing to capture")
	}

	draft := capture.Parse(raw)
	if draft.Title == "" {
		return clierr.New(clierr.InvalidInput,
			"captured text contains only tokens; add a few words for the title")
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return outputDraft(draft)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := materializeDraft(cfg, draft)
	if err != nil {
		return err
	}

	if err := task.Create(cfg, t); err != nil {
		return err
	}

	logActivity(cfg, "capture", t.ID, t.Title)

	return outputCaptureResult(t)
}

// materializeDraft turns a parsed draft into a task ready for creation.
// A project reference that matches an existing project (case-insensitive,
// spaces-as-hyphens) is normalized to that project's title; otherwise the
// reference is kept verbatim.
func materializeDraft(cfg *config.Config, d capture.Draft) (*task.Task, error) {
	t := &task.Task{
		Title:    d.Title,
		Bucket:   d.Bucket,
		Priority: d.Priority,
		Context:  d.Context,
		Project:  d.Project,
		Tags:     d.Tags,
	}

	if t.Project != "" {
		projects, err := project.ReadAll(cfg.ProjectsPath())
		if err != nil {
			return nil, err
		}
		if p := project.Resolve(projects, t.Project); p != nil {
			t.Project = p.Title
		}
	}

	if d.Due != "" {
		due, err := date.Parse(d.Due)
		if err != nil {
			return nil, task.FormatDueDate(d.Due, err)
		}
		t.Due = &due
	}

	return t, nil
}

func outputDraft(d capture.Draft) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, d)
	}

	output.Messagef(os.Stdout, "Title:    %s", d.Title)
	output.Messagef(os.Stdout, "Bucket:   %s", orDefault(d.Bucket, config.DefaultBucket))
	if d.Priority != "" {
		output.Messagef(os.Stdout, "Priority: %s", d.Priority)
	}
	if d.Context != "" {
		output.Messagef(os.Stdout, "Context:  %s", d.Context)
	}
	if d.Project != "" {
		output.Messagef(os.Stdout, "Project:  %s", d.Project)
	}
	if len(d.Tags) > 0 {
		output.Messagef(os.Stdout, "Tags:     %s", strings.Join(d.Tags, ", "))
	}
	if d.Due != "" {
		output.Messagef(os.Stdout, "Due:      %s", d.Due)
	}
	return nil
}

func outputCaptureResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Captured task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Bucket: %s | Priority: %s", t.Bucket, t.Priority)
	if t.Context != "" {
		output.Messagef(os.Stdout, "  Context: %s", t.Context)
	}
	if t.Project != "" {
		output.Messagef(os.Stdout, "  Project: %s", t.Project)
	}
	if len(t.Tags) > 0 {
		output.Messagef(os.Stdout, "  Tags: %s", strings.Join(t.Tags, ", "))
	}
	if t.Due != nil {
		output.Messagef(os.Stdout, "  Due: %s", t.Due.String())
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
