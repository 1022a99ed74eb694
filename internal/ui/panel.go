package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/mytodo/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames lines in the current theme's border.
func PanelString(lines []string) string {
	box := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}

// Header is the stats line shown above task listings.
func Header(done, pending int) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		current.Title.Render("Todos"),
		current.Success.Render(current.SymDone), done,
		current.Pending.Render(current.SymPending), pending,
		current.Accent.Render("Total"), done+pending,
	)
}

// maxTitleWidth is the widest title, in terminal cells, TaskLine prints.
const maxTitleWidth = 80

// TaskLine renders one task: box, id, title and optional due date.
func TaskLine(t model.Task) string {
	box, boxStyle := current.BoxUnchecked, current.Muted
	title := ansi.Truncate(t.Title, maxTitleWidth, "...")
	if t.Done {
		box, boxStyle = current.BoxChecked, current.Success
		title = current.Done.Render(title)
	}
	line := fmt.Sprintf("%s %s %s",
		boxStyle.Render(box), current.Muted.Render(fmt.Sprintf("[%d]", t.ID)), title)
	if t.Due != nil {
		line += " " + current.Accent.Render("(due "+t.Due.String()+")")
	}
	return line
}
