// Package addcard is a small form for adding one card to a course.
package addcard

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/router"
	"github.com/kennt44/teachme/internal/screen"
	"github.com/kennt44/teachme/internal/tutor"
	"github.com/kennt44/teachme/internal/ui/components"
	"github.com/kennt44/teachme/internal/ui/layout"
)

const (
	fieldFront = iota
	fieldBack
	fieldHint
	fieldCount
)

// cardAddedMsg is sent when the add-card request completes.
type cardAddedMsg struct {
	ISO string
	Err error
}

// AddCardScreen implements screen.Screen for the new-card form.
type AddCardScreen struct {
	gateway tutor.Service
	log     zerolog.Logger
	course  tutor.Course

	inputs     [fieldCount]components.TextInput
	focus      int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*AddCardScreen)(nil)
var _ screen.KeyHintProvider = (*AddCardScreen)(nil)

// New creates the form for one course.
func New(gateway tutor.Service, log zerolog.Logger, course tutor.Course) *AddCardScreen {
	s := &AddCardScreen{
		gateway: gateway,
		log:     log,
		course:  course,
	}
	s.inputs[fieldFront] = components.NewTextInput("prompt in your language", 200)
	s.inputs[fieldBack] = components.NewTextInput("translation in "+course.Language, 200)
	s.inputs[fieldHint] = components.NewTextInput("optional hint", 200)
	return s
}

func (s *AddCardScreen) Init() tea.Cmd {
	return s.inputs[fieldFront].Focus()
}

func (s *AddCardScreen) Title() string {
	return "Add card · " + s.course.Language
}

func (s *AddCardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *AddCardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardAddedMsg:
		return s.handleCardAdded(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *AddCardScreen) handleCardAdded(msg cardAddedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.ISO != s.course.ISO {
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = "Couldn't save the card: " + msg.Err.Error()
		return s, nil
	}

	return s, tea.Batch(
		router.SetStatus("Card added to "+s.course.Language+"."),
		func() tea.Msg { return router.PopScreenMsg{} },
	)
}

func (s *AddCardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus < fieldHint {
			return s, s.setFocus(s.focus + 1)
		}
		return s.submit()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *AddCardScreen) setFocus(field int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = field
	return s.inputs[s.focus].Focus()
}

func (s *AddCardScreen) submit() (screen.Screen, tea.Cmd) {
	front := strings.TrimSpace(s.inputs[fieldFront].Value())
	back := strings.TrimSpace(s.inputs[fieldBack].Value())
	hint := strings.TrimSpace(s.inputs[fieldHint].Value())

	s.inputs[fieldFront].Submit(front != "")
	s.inputs[fieldBack].Submit(back != "")
	if front == "" || back == "" {
		s.errMsg = "Front and back are both required."
		return s, nil
	}

	s.errMsg = ""
	s.submitting = true

	iso := s.course.ISO
	gateway := s.gateway
	card := tutor.NewCard{Front: front, Back: back, Hint: hint}
	return s, func() tea.Msg {
		err := gateway.AddCard(context.Background(), iso, card)
		return cardAddedMsg{ISO: iso, Err: err}
	}
}
