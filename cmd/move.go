package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var moveCmd = &cobra.Command{
	Use:     "move ID[,ID,...] [BUCKET]",
	Aliases: []string{"mv"},
	Short:   "Move a task to a different bucket",
	Long: `Changes the bucket of a task. Provide the new bucket directly,
or use --next/--prev to move along the configured bucket order.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMove,
}

var doneCmd = &cobra.Command{
	Use:   "done ID[,ID,...]",
	Short: "Mark a task as done",
	Long:  `Moves a task to the done bucket and records the completion time.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	moveCmd.Flags().Bool("next", false, "move to next bucket")
	moveCmd.Flags().Bool("prev", false, "move to previous bucket")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(doneCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
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
		return moveSingleTask(cfg, ids[0], cmd, args)
	}

	// Batch mode.
	return runBatch(ids, func(id int) error {
		_, _, err := executeMove(cfg, id, cmd, args)
		return err
	})
}

func runDone(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doneArgs := []string{args[0], config.DoneBucket}

	if len(ids) == 1 {
		return moveSingleTask(cfg, ids[0], cmd, doneArgs)
	}
	return runBatch(ids, func(id int) error {
		_, _, err := executeMove(cfg, id, cmd, doneArgs)
		return err
	})
}

// moveResult wraps a task with a changed flag for JSON output.
type moveResult struct {
	*task.Task
	Changed bool `json:"changed"`
}

// moveSingleTask handles a single task move with full output.
func moveSingleTask(cfg *config.Config, id int, cmd *cobra.Command, args []string) error {
	t, oldBucket, err := executeMove(cfg, id, cmd, args)
	if err != nil {
		return err
	}

	// Idempotent: bucket didn't change.
	if oldBucket == "" {
		return outputMoveResult(t, false)
	}

	if outputFormat() == output.FormatJSON {
		return outputMoveResult(t, true)
	}

	output.Messagef(os.Stdout, "Moved task #%d: %s -> %s", id, oldBucket, t.Bucket)
	return nil
}

// executeMove performs the core move: find, read, resolve, write, log.
// Returns (task, oldBucket, error). If the task was already at the target
// bucket (idempotent), oldBucket is empty and the task is returned unchanged.
func executeMove(cfg *config.Config, id int, cmd *cobra.Command, args []string) (*task.Task, string, error) {
	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return nil, "", err
	}

	t, err := task.Read(path)
	if err != nil {
		return nil, "", err
	}

	newBucket, err := resolveTargetBucket(cmd, args, t, cfg)
	if err != nil {
		return nil, "", err
	}

	// Idempotent: if already at target bucket, succeed without writing.
	if t.Bucket == newBucket {
		return t, "", nil
	}

	oldBucket := t.Bucket
	t.Bucket = newBucket
	task.UpdateTimestamps(t, oldBucket, newBucket, cfg)
	t.Updated = time.Now()

	if err := task.Write(path, t); err != nil {
		return nil, "", fmt.Errorf("writing task: %w", err)
	}

	logActivity(cfg, "move", id, oldBucket+" -> "+newBucket)
	return t, oldBucket, nil
}

func resolveTargetBucket(cmd *cobra.Command, args []string, t *task.Task, cfg *config.Config) (string, error) {
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")

	switch {
	case len(args) == 2: //nolint:mnd // positional arg
		bucket := args[1]
		if err := task.ValidateBucket(bucket, cfg.Buckets); err != nil {
			return "", err
		}
		return bucket, nil
	case next:
		idx := cfg.BucketIndex(t.Bucket)
		if idx < 0 || idx >= len(cfg.Buckets)-1 {
			return "", task.ValidateBoundaryError(t.ID, t.Bucket, "last")
		}
		return cfg.Buckets[idx+1], nil
	case prev:
		idx := cfg.BucketIndex(t.Bucket)
		if idx <= 0 {
			return "", task.ValidateBoundaryError(t.ID, t.Bucket, "first")
		}
		return cfg.Buckets[idx-1], nil
	default:
		return "", clierr.New(clierr.InvalidInput, "provide a target bucket or use --next/--prev")
	}
}

func outputMoveResult(t *task.Task, changed bool) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, moveResult{Task: t, Changed: changed})
	}
	if !changed {
		output.Messagef(os.Stdout, "Task #%d is already at %s", t.ID, t.Bucket)
	}
	return nil
}
