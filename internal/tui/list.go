package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gradewatch/gradewatch/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: assignment list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No assignments")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// statusGlyph picks a one-cell marker for the assignment status.
func statusGlyph(status string) string {
	switch status {
	case "missing":
		return styleMissing.Render("!")
	case "exempt", "not_included":
		return styleExempt.Render("~")
	case "not_graded":
		return stylePending.Render("?")
	}
	return styleGraded.Render("·")
}

// formatResultLine formats a single assignment as two lines:
//
//	line 1: [>] ! MM-DD name
//	line 2:      course · grade score (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	glyph := statusGlyph(r.Status)

	// Short date (e.g. "2026-01-21" -> "01-21")
	date := r.Date
	if len(date) >= 10 {
		date = date[5:10]
	}

	name := strings.ReplaceAll(r.Name, "\n", " ")
	nameMax := width - 2 - 2 - 6 - 2 // prefix + glyph + date + padding
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s", glyph, date, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := fmt.Sprintf("%s · %s %s", r.Course, r.LetterGrade, r.Score())
	detailMax := width - 4 // indent
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
