package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/project"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var addCmd = &cobra.Command{
	Use:   "add [TITLE]",
	Short: "Add a new task with explicit fields",
	Long: `Creates a new task file with the given title and optional fields.

Unlike capture, add takes the title verbatim and sets fields via flags.
Title can be provided as a positional argument or via --title flag.
Body/description can be provided via --body or --description flag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("bucket", "", "target bucket (default from config)")
	addCmd.Flags().String("priority", "", "task priority (default from config)")
	addCmd.Flags().String("context", "", "task context (e.g. @home)")
	addCmd.Flags().String("project", "", "project name")
	addCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tag":
			name = "tags"
		case "description":
			name = "body"
		}
		return pflag.NormalizedName(name)
	})
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().String("body", "", "task body/description (markdown)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}

	t := &task.Task{Title: title}
	if err := applyAddFlags(cmd, t, cfg); err != nil {
		return err
	}

	if err := task.Create(cfg, t); err != nil {
		return err
	}

	logActivity(cfg, "add", t.ID, t.Title)

	return outputAddResult(t)
}

// resolveAddTitle returns the task title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}

func applyAddFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("bucket"); v != "" {
		if err := task.ValidateBucket(v, cfg.Buckets); err != nil {
			return err
		}
		t.Bucket = v
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := task.ValidatePriority(v, cfg.Priorities); err != nil {
			return err
		}
		t.Priority = v
	}
	if v, _ := cmd.Flags().GetString("context"); v != "" {
		if !strings.HasPrefix(v, "@") {
			v = "@" + v
		}
		if err := task.ValidateContext(v, cfg.Contexts); err != nil {
			return err
		}
		t.Context = v
	}
	if v, _ := cmd.Flags().GetString("project"); v != "" {
		projects, err := project.ReadAll(cfg.ProjectsPath())
		if err != nil {
			return err
		}
		if p := project.Resolve(projects, v); p != nil {
			v = p.Title
		}
		t.Project = v
	}
	if v, _ := cmd.Flags().GetStringSlice("tags"); len(v) > 0 {
		t.Tags = v
	}
	if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return task.FormatDueDate(v, err)
		}
		t.Due = &d
	}
	if v, _ := cmd.Flags().GetString("body"); v != "" {
		t.Body = v
	}
	return nil
}

func outputAddResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  File: %s", t.File)
	output.Messagef(os.Stdout, "  Bucket: %s | Priority: %s", t.Bucket, t.Priority)
	if len(t.Tags) > 0 {
		output.Messagef(os.Stdout, "  Tags: %s", strings.Join(t.Tags, ", "))
	}
	return nil
}
