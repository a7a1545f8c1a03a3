package courses

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kennt44/teachme/internal/ui/theme"
)

func (s *CoursesScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.loading:
		return renderLoading(width)
	case len(s.courses) == 0:
		return renderEmpty(width)
	default:
		return s.renderList(width)
	}
}

func (s *CoursesScreen) renderList(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Pick a course"))
	b.WriteString("\n\n")

	for i, course := range s.courses {
		label := course.Language
		count := fmt.Sprintf("%d cards", course.CardCount)
		if course.CardCount == 0 {
			count = "empty"
		}

		row := fmt.Sprintf("%-20s %s", label, count)
		switch {
		case course.CardCount == 0:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("    " + row))
		case i == s.menu.Selected:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ " + row))
		default:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    " + row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Fetching courses...")
}

func renderEmpty(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  No courses on the server yet.\n\n  Seed one with: teachme seed <iso>")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press R to retry.", errMsg))
}
