package addcard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kennt44/teachme/internal/ui/components"
	"github.com/kennt44/teachme/internal/ui/theme"
)

var fieldLabels = [fieldCount]string{"Front", "Back", "Hint"}

func (s *AddCardScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  New card for " + s.course.Language))
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := fieldLabels[i]
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.focus {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString("  " + style.Render(label))
		b.WriteString("\n  ")
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	save := components.NewButton("Save card", s.focus == fieldHint, nil)
	b.WriteString("  " + save.View())
	b.WriteString("\n\n")

	switch {
	case s.submitting:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  Saving..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("  " + s.errMsg))
	}

	return b.String()
}
