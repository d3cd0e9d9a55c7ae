package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gradewatch/gradewatch/internal/index"
	"github.com/gradewatch/gradewatch/internal/render"
	"github.com/gradewatch/gradewatch/internal/search"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the course preview async.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderCourse(db, r.Course, render.Options{
			HitKey: r.Key,
			Width:  width,
			Query:  query,
		})
		return previewRenderedMsg{
			key:     r.Key,
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
