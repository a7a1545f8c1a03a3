package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	psess "github.com/kennt44/teachme/internal/practice"
	"github.com/kennt44/teachme/internal/ui/components"
	"github.com/kennt44/teachme/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.emptyDeck:
		return renderEmptyDeck(width, s.course.Language)
	case s.confirmReset:
		return renderResetConfirm(width, s.course.Language)
	case s.state == nil:
		return renderLoading(width)
	case s.state.Phase == psess.PhaseComplete:
		return s.renderComplete(width)
	default:
		return s.renderCard(width, height)
	}
}

func (s *PracticeScreen) renderCard(width, height int) string {
	state := s.state
	card := state.Current()

	var b strings.Builder

	// Progress line: position on the left, stats snapshot on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d/%d", state.Cursor+1, state.Len()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(s.statsLine())

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Front of the card.
	front := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(card.Front)
	b.WriteString(front)
	b.WriteString("\n\n")

	if state.ShowHint && card.Hint != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("hint: " + card.Hint))
		b.WriteString("\n\n")
	}

	switch {
	case state.Phase == psess.PhaseRecording:
		b.WriteString(s.renderRecording(width))
	case state.Phase == psess.PhaseEvaluating:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Scoring your pronunciation..."))
	case state.ShowAnswer:
		b.WriteString(s.renderAnswer(width))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Space to reveal"))
	}

	return b.String()
}

func (s *PracticeScreen) renderAnswer(width int) string {
	state := s.state
	card := state.Current()

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render(card.Back))
	b.WriteString("\n\n")

	if state.Evaluation != nil {
		b.WriteString(s.renderEvaluation(width, state.Evaluation.Similarity))
		b.WriteString("\n\n")
	}

	// Grade row.
	labels := []string{"1 Again", "2 Hard", "3 Good", "4 Easy"}
	styles := []lipgloss.Style{theme.Poor, theme.Close, theme.Good, theme.Selected}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = styles[i].Render("[" + l + "]")
	}
	row := strings.Join(parts, "  ")
	if s.reviewPending {
		row = lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving review...")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))

	return b.String()
}

func (s *PracticeScreen) renderEvaluation(width int, _ float64) string {
	ev := s.state.Evaluation

	var verdict lipgloss.Style
	var label string
	switch psess.SimilarityBand(ev.Similarity) {
	case psess.BandHigh:
		verdict, label = theme.Good, "Great pronunciation!"
	case psess.BandMid:
		verdict, label = theme.Close, "Close, keep at it"
	default:
		verdict, label = theme.Poor, "Needs work"
	}

	var b strings.Builder
	bar := components.NewProgressBar("Match", ev.Similarity/100, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		verdict.Render(label)+lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ("+ev.Grade+")")))
	if ev.Transcript != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("heard: “"+ev.Transcript+"”")))
	}
	if ev.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(ev.Feedback)))
	}
	return b.String()
}

func (s *PracticeScreen) renderRecording(width int) string {
	elapsed := s.recorder.Elapsed().Seconds()
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(theme.Recording.Render("● REC") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("  %.1fs", elapsed)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("   say it out loud, then press R"))
}

func (s *PracticeScreen) renderComplete(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d cards reviewed in %s", s.state.Reviewed, s.course.Language)))
	if line := s.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(line))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to go back"))
	return b.String()
}

// statsLine formats the snapshot panel, or a shrug when the fetch failed.
func (s *PracticeScreen) statsLine() string {
	if s.stats == nil {
		return "stats unavailable"
	}
	return fmt.Sprintf("due %d · mastered %d · total %d",
		s.stats.DueToday, s.stats.Mastered, s.stats.TotalCards)
}

func renderResetConfirm(width int, language string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Reset all %s progress?", language)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Every card goes back to unlearned."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, reset"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderEmptyDeck(width int, language string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  All caught up — nothing due in %s right now.\n\n  Press any key to go back.", language))
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Fetching your cards...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
