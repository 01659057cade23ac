package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

const (
	captureInputChrome = 8 // dialog border + padding + prompt
	maxTitleLines      = 2
)

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	overdueCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	highPrioStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	contextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	projectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	tagLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// --- View rendering ---

func (b *Board) viewBoard() string {
	if len(b.columns) == 0 {
		return "No buckets configured."
	}

	colWidth := b.columnWidth()

	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Clamp the column area to the available height. At very small terminal
	// sizes a single card can exceed the budget; trim from the bottom so
	// headers stay visible, and pad when short.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	statusBar := b.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", statusBar)
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	w := b.width / len(b.columns)
	const maxColWidth = 60
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	headerText := fmt.Sprintf("%s (%d)", col.bucket, len(col.tasks))
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := b.visibleCardsForColumn(&col, width)
	start := col.scrollOff
	end := min(start+maxVis, len(col.tasks))
	if start > len(col.tasks) {
		start = len(col.tasks)
	}

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			t := col.tasks[rowIdx]
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(t, active, width))
		}
	}

	if end < len(col.tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	content := strings.Join(b.cardContentLines(t, width), "\n")

	style := cardStyle
	if t.Overdue(b.now()) {
		style = overdueCardStyle
	}
	if active {
		style = activeCardStyle
	}

	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	return len(b.cardContentLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

// cardContentLines builds the inner lines of a card: the title (wrapped),
// then a metadata line with context, project and tags, then a due line.
func (b *Board) cardContentLines(t *task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := width - cardChrome
	if cardWidth < 1 {
		cardWidth = 1
	}

	titleStyle := lipgloss.NewStyle()
	if t.Priority == "high" {
		titleStyle = highPrioStyle
	}

	idPrefix := dimStyle.Render(fmt.Sprintf("#%d ", t.ID))
	firstWidth := cardWidth - lipgloss.Width(idPrefix)
	if firstWidth < 1 {
		firstWidth = 1
	}

	wrapped := wrapTitle(t.Title, firstWidth, cardWidth, maxTitleLines)
	lines := []string{idPrefix + titleStyle.Render(wrapped[0])}
	for _, line := range wrapped[1:] {
		lines = append(lines, titleStyle.Render(line))
	}

	var meta []string
	if t.Context != "" {
		meta = append(meta, contextStyle.Render(t.Context))
	}
	if t.Project != "" {
		meta = append(meta, projectStyle.Render(truncate(t.Project, cardWidth/2))) //nolint:mnd // half width for project
	}
	for _, tag := range t.Tags {
		meta = append(meta, tagLineStyle.Render("+"+tag))
	}
	if len(meta) > 0 {
		lines = append(lines, truncate(strings.Join(meta, " "), cardWidth))
	}

	if t.Due != nil {
		due := "due " + t.Due.String()
		if t.Overdue(b.now()) {
			lines = append(lines, overdueStyle.Render(truncate(due, cardWidth)))
		} else {
			lines = append(lines, dimStyle.Render(truncate(due, cardWidth)))
		}
	}

	return lines
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. The first line has its own width because it shares space with
// the ID prefix.
func wrapTitle(title string, firstWidth, restWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= firstWidth || maxLines == 1 {
		return []string{truncate(title, firstWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		lineWidth := restWidth
		if len(lines) == 0 {
			lineWidth = firstWidth
		}

		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= lineWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), lineWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words so truncation shows
				// the ellipsis.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		w := restWidth
		if len(lines) == 0 {
			w = firstWidth
		}
		lines = append(lines, truncate(current.String(), w))
	}
	return lines
}

func (b *Board) renderStatusBar() string {
	status := fmt.Sprintf(" %s | %d tasks | a:capture [/]:move d:archive q:quit",
		b.cfg.Space.Name, len(b.tasks))
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (b *Board) viewArchiveConfirm() string {
	content := errorStyle.Render("Archive task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", b.archiveID, b.archiveTitle) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (b *Board) viewCaptureOverlay() string {
	content := lipgloss.NewStyle().Bold(true).Render("Capture") + "\n\n" +
		b.input.View() + "\n\n" +
		dimStyle.Render("enter:save  esc:cancel")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
