package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/gtd/internal/output"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task including its markdown body.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("raw", false, "print the markdown body without rendering")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return task.ValidateTaskID(args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return err
	}

	t, err := task.Read(path)
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t)
		return nil
	}

	output.TaskDetail(os.Stdout, t)

	if t.Body != "" {
		fmt.Fprintln(os.Stdout)
		raw, _ := cmd.Flags().GetBool("raw")
		fmt.Fprint(os.Stdout, renderBody(t.Body, raw))
	}
	return nil
}

// renderBody renders the markdown body with glamour when writing to a
// terminal. Piped output and --raw get the plain markdown.
func renderBody(body string, raw bool) string {
	if raw || flagNoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		return body + "\n"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80), //nolint:mnd // readable line width
	)
	if err != nil {
		return body + "\n"
	}
	rendered, err := r.Render(body)
	if err != nil {
		return body + "\n"
	}
	return rendered
}
