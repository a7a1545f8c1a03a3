package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/playback"
	"github.com/kennt44/teachme/internal/router"
	"github.com/kennt44/teachme/internal/screen"
	"github.com/kennt44/teachme/internal/screens/courses"
	practicescreen "github.com/kennt44/teachme/internal/screens/practice"
	"github.com/kennt44/teachme/internal/tutor"
	"github.com/kennt44/teachme/internal/ui/layout"
	"github.com/kennt44/teachme/internal/ui/theme"
)

// Options carry the wired dependencies for the TUI.
type Options struct {
	Gateway  tutor.Service
	Recorder practicescreen.Recorder
	Player   playback.Player
	Logger   zerolog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    zerolog.Logger
	width  int
	height int
}

// newAppModel creates the root model with the course list on the stack.
func newAppModel(opts Options) AppModel {
	landing := courses.New(opts.Gateway, opts.Recorder, opts.Player, opts.Logger)
	return AppModel{
		router: router.New(landing),
		log:    opts.Logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Escape is screen-local: a live recording has to release the
		// microphone before navigation. Only ctrl+c is global.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "", m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if status := m.router.Status(); status != "" {
		footer = theme.StatusLine.Width(m.width).Render("  "+status) + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
