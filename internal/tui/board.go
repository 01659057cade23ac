// Package tui implements the interactive terminal board for a GTD space.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/gtd/internal/capture"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
	"github.com/twiced-technology-gmbh/gtd/internal/project"
	"github.com/twiced-technology-gmbh/gtd/internal/review"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmArchive
	viewCapture
)

const (
	keyEsc = "esc"

	boardChrome  = 2 // blank line + status bar below the column area
	errorChrome  = 1 // extra line when error toast is displayed
	tickInterval = 30 * time.Second // how often relative dates refresh

	captureCharLimit = 200
)

// Board is the top-level bubbletea model.
type Board struct {
	cfg       *config.Config
	tasks     []*task.Task
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	now       func() time.Time // clock for overdue checks; defaults to time.Now

	// Archive confirmation.
	archiveID    int
	archiveTitle string

	// Quick capture.
	input textinput.Model
}

// column groups tasks belonging to a single bucket.
type column struct {
	bucket    string
	tasks     []*task.Task
	scrollOff int // first visible row index
}

// NewBoard creates a new Board model from a config.
func NewBoard(cfg *config.Config) *Board {
	ti := textinput.New()
	ti.Placeholder = "capture a task, e.g. call bank !H @phone +money due:tomorrow"
	ti.CharLimit = captureCharLimit

	b := &Board{cfg: cfg, now: time.Now, input: ti}
	b.loadTasks()
	return b
}

// SetNow overrides the clock function used for overdue display (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.input.Width = msg.Width - captureInputChrome
		return b, nil
	case ReloadMsg:
		b.loadTasks()
		return b, nil
	case TickMsg:
		return b, tickCmd()
	case errMsg:
		b.err = msg.err
		return b, nil
	}

	if b.view == viewCapture {
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewConfirmArchive:
		return b.viewArchiveConfirm()
	case viewCapture:
		return b.viewCaptureOverlay()
	default:
		return b.viewBoard()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewConfirmArchive:
		return b.handleArchiveKey(msg)
	case viewCapture:
		return b.handleCaptureKey(msg)
	}

	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case "l", "right":
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case "j", "down":
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case "k", "up":
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case "[", "H":
		b.moveSelected(-1)
	case "]", "L":
		b.moveSelected(1)
	case "a", "c":
		b.view = viewCapture
		b.input.SetValue("")
		return b, b.input.Focus()
	case "d", "D":
		b.handleArchiveStart()
	}
	return b, nil
}

func (b *Board) handleArchiveStart() {
	if t := b.selectedTask(); t != nil {
		b.archiveID = t.ID
		b.archiveTitle = t.Title
		b.view = viewConfirmArchive
	}
}

func (b *Board) handleArchiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return b.executeArchive()
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		b.view = viewBoard
		b.input.Blur()
		return b, nil
	case "enter":
		return b.executeCapture()
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// executeCapture parses the quick-capture input and creates a task from it.
func (b *Board) executeCapture() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(b.input.Value())
	if raw == "" {
		b.view = viewBoard
		b.input.Blur()
		return b, nil
	}

	draft := capture.Parse(raw)
	t := draftTask(b.cfg, draft)

	if err := task.Create(b.cfg, t); err != nil {
		b.err = fmt.Errorf("capturing task: %w", err)
	} else {
		review.LogMutation(b.cfg.Dir(), "capture", t.ID, t.Title)
	}

	b.view = viewBoard
	b.input.Blur()
	b.loadTasks()
	return b, nil
}

// draftTask materializes a parsed capture draft into a task. Unknown project
// names are kept verbatim; an unparsable due value is dropped.
func draftTask(cfg *config.Config, d capture.Draft) *task.Task {
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
		if err == nil {
			if p := project.Resolve(projects, t.Project); p != nil {
				t.Project = p.Title
			}
		}
	}
	if d.Due != "" {
		if due, err := date.Parse(d.Due); err == nil {
			t.Due = &due
		}
	}
	return t
}

// moveSelected shifts the selected task one bucket left or right on the board.
func (b *Board) moveSelected(dir int) {
	t := b.selectedTask()
	if t == nil {
		return
	}

	buckets := b.cfg.BoardBuckets()
	idx := config.IndexOf(buckets, t.Bucket)
	target := idx + dir
	if idx < 0 || target < 0 || target >= len(buckets) {
		return
	}

	oldBucket := t.Bucket
	t.Bucket = buckets[target]
	task.UpdateTimestamps(t, oldBucket, t.Bucket, b.cfg)
	t.Updated = b.now()

	if err := task.Write(t.File, t); err != nil {
		b.err = fmt.Errorf("moving task #%d: %w", t.ID, err)
	} else {
		review.LogMutation(b.cfg.Dir(), "move", t.ID, oldBucket+" -> "+t.Bucket)
	}

	b.loadTasks()
	b.activeCol = target
	b.clampRow()
}

func (b *Board) executeArchive() (tea.Model, tea.Cmd) {
	path, err := task.FindByID(b.cfg.TasksPath(), b.archiveID)
	if err != nil {
		b.err = fmt.Errorf("finding task #%d: %w", b.archiveID, err)
		b.view = viewBoard
		return b, nil
	}

	t, err := task.Read(path)
	if err != nil {
		b.err = fmt.Errorf("reading task #%d: %w", b.archiveID, err)
		b.view = viewBoard
		return b, nil
	}

	if t.Bucket != config.ArchivedBucket {
		oldBucket := t.Bucket
		t.Bucket = config.ArchivedBucket
		task.UpdateTimestamps(t, oldBucket, t.Bucket, b.cfg)
		t.Updated = b.now()
	}

	if err := task.Write(path, t); err != nil {
		b.err = fmt.Errorf("archiving task #%d: %w", b.archiveID, err)
	} else {
		review.LogMutation(b.cfg.Dir(), "delete", b.archiveID, b.archiveTitle)
	}

	b.view = viewBoard
	b.loadTasks()
	return b, nil
}

// loadTasks reads all tasks and organizes them into bucket columns.
func (b *Board) loadTasks() {
	tasks, _, err := task.ReadAllLenient(b.cfg.TasksPath())
	if err != nil {
		b.err = err
		return
	}
	b.err = nil

	// Archived tasks never show on the board.
	var visible []*task.Task
	for _, t := range tasks {
		if !b.cfg.IsArchivedBucket(t.Bucket) {
			visible = append(visible, t)
		}
	}
	b.tasks = visible

	// Highest priority first within each column.
	review.Sort(visible, "priority", true, b.cfg)

	displayBuckets := b.cfg.BoardBuckets()
	b.columns = make([]column, len(displayBuckets))
	for i, bucket := range displayBuckets {
		b.columns[i] = column{bucket: bucket}
	}

	for _, t := range visible {
		for i := range b.columns {
			if b.columns[i].bucket == t.Bucket {
				b.columns[i].tasks = append(b.columns[i].tasks, t)
				break
			}
		}
	}

	b.clampRow()
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements
// below the column area.
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines that consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for the column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail-- // up indicator
	}

	n := b.fitCardsInHeight(col, avail, width)

	if col.scrollOff+n < len(col.tasks) {
		// Re-compute with 1 fewer line for the down indicator.
		n = b.fitCardsInHeight(col, avail-1, width)
		if n < 1 {
			n = 1
		}
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	w := b.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 || avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := b.cardHeight(col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}

	if count < 1 {
		return 1
	}
	return count
}

// WatchPaths returns the paths that should be watched for file changes.
func (b *Board) WatchPaths() []string {
	paths := []string{b.cfg.TasksPath()}
	if b.cfg.Dir() != b.cfg.TasksPath() {
		paths = append(paths, b.cfg.Dir())
	}
	return paths
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

type errMsg struct{ err error }

// TickMsg is sent periodically to refresh overdue highlighting.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}
