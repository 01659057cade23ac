package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new GTD space",
	Long:  `Creates a GTD space directory with config.yml, tasks/ and projects/ subdirectories.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "space name (defaults to current directory name)")
	initCmd.Flags().StringSlice("buckets", nil, "comma-separated list of buckets")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.SpaceAlreadyExists, "space already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	cfg := config.NewDefault(name)
	cfg.SetDir(absDir)

	if buckets, _ := cmd.Flags().GetStringSlice("buckets"); len(buckets) > 0 {
		cfg.Buckets = buckets
		cfg.Defaults.Bucket = buckets[0]
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	const dirMode = 0o750
	for _, d := range []string{cfg.TasksPath(), cfg.ProjectsPath()} {
		if err := os.MkdirAll(d, dirMode); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":   "initialized",
			"dir":      absDir,
			"name":     name,
			"config":   cfg.ConfigPath(),
			"tasks":    cfg.TasksPath(),
			"projects": cfg.ProjectsPath(),
			"buckets":  strings.Join(cfg.Buckets, ","),
		})
	}

	output.Messagef(os.Stdout, "Initialized space %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:   %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Tasks:    %s", cfg.TasksPath())
	output.Messagef(os.Stdout, "  Projects: %s", cfg.ProjectsPath())
	output.Messagef(os.Stdout, "  Buckets:  %s", strings.Join(cfg.Buckets, ", "))
	output.Messagef(os.Stdout, "  Hint:     Capture your first task with: gtd c \"call bank !H @phone\"")
	return nil
}
