package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/project"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"pro"},
	Short:   "Manage projects",
	Long:    `Projects group related tasks. Reference a project on a task with pro:NAME.`,
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with open task counts",
	RunE:    runProjectList,
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectAdd(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := project.Create(cfg.ProjectsPath(), args[0])
	if err != nil {
		return err
	}

	logActivity(cfg, "project-add", 0, p.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, p)
	}

	output.Messagef(os.Stdout, "Created project %q", p.Title)
	output.Messagef(os.Stdout, "  File: %s", p.File)
	return nil
}

// projectListing pairs a project with its task counts for output.
type projectListing struct {
	*project.Project
	OpenTasks int `json:"open_tasks"`
	DoneTasks int `json:"done_tasks"`
}

func runProjectList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projects, err := project.ReadAll(cfg.ProjectsPath())
	if err != nil {
		return err
	}

	tasks, warnings, err := task.ReadAllLenient(cfg.TasksPath())
	if err != nil {
		return err
	}
	printWarnings(warnings)

	listings := make([]projectListing, 0, len(projects))
	for _, p := range projects {
		listing := projectListing{Project: p}
		for _, t := range tasks {
			if project.Resolve([]*project.Project{p}, t.Project) == nil {
				continue
			}
			if cfg.IsTerminalBucket(t.Bucket) {
				listing.DoneTasks++
			} else {
				listing.OpenTasks++
			}
		}
		listings = append(listings, listing)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found. Create one with: gtd project add TITLE")
		return nil
	}

	for _, l := range listings {
		output.Messagef(os.Stdout, "%-30s open: %d  done: %d", l.Title, l.OpenTasks, l.DoneTasks)
	}
	return nil
}
