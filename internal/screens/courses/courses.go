// Package courses is the landing screen: the list of courses on the
// server, each opening a practice session.
package courses

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/playback"
	"github.com/kennt44/teachme/internal/router"
	"github.com/kennt44/teachme/internal/screen"
	"github.com/kennt44/teachme/internal/screens/addcard"
	practicescreen "github.com/kennt44/teachme/internal/screens/practice"
	"github.com/kennt44/teachme/internal/tutor"
	"github.com/kennt44/teachme/internal/ui/components"
	"github.com/kennt44/teachme/internal/ui/layout"
)

// CoursesScreen implements screen.Screen for the course list.
type CoursesScreen struct {
	gateway  tutor.Service
	recorder practicescreen.Recorder
	player   playback.Player
	log      zerolog.Logger

	menu    components.Menu
	courses []tutor.Course
	loading bool
	errMsg  string
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)
var _ router.Refresher = (*CoursesScreen)(nil)

// New creates the course list screen with injected dependencies.
func New(gateway tutor.Service, recorder practicescreen.Recorder, player playback.Player, log zerolog.Logger) *CoursesScreen {
	return &CoursesScreen{
		gateway:  gateway,
		recorder: recorder,
		player:   player,
		log:      log,
	}
}

func (s *CoursesScreen) Init() tea.Cmd {
	s.loading = true
	return s.loadCourses()
}

// Refresh reloads the list when a practice session pops back to us, so
// card counts reflect the reviews that just happened.
func (s *CoursesScreen) Refresh() tea.Cmd {
	return s.loadCourses()
}

func (s *CoursesScreen) Title() string {
	return "Courses"
}

func (s *CoursesScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Practice"},
		{Key: "A", Description: "Add card"},
		{Key: "R", Description: "Reload"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		return s.handleCoursesLoaded(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *CoursesScreen) handleCoursesLoaded(msg coursesLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		return s, nil
	}

	s.errMsg = ""
	s.courses = msg.Courses
	s.menu = components.NewMenu(s.menuItems(msg.Courses))
	return s, nil
}

func (s *CoursesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return s, tea.Quit
	case "r":
		if s.loading {
			return s, nil
		}
		s.loading = true
		s.errMsg = ""
		return s, s.loadCourses()
	case "a":
		if course, ok := s.selected(); ok {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: addcard.New(s.gateway, s.log, course)}
			}
		}
		return s, nil
	}

	if s.loading || s.errMsg != "" {
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// selected returns the course under the cursor, false when the list is
// empty.
func (s *CoursesScreen) selected() (tutor.Course, bool) {
	if len(s.courses) == 0 || s.menu.Selected >= len(s.courses) {
		return tutor.Course{}, false
	}
	return s.courses[s.menu.Selected], true
}

func (s *CoursesScreen) menuItems(courses []tutor.Course) []components.MenuItem {
	items := make([]components.MenuItem, len(courses))
	for i, course := range courses {
		course := course
		items[i] = components.MenuItem{
			Label:    course.Language,
			Disabled: course.CardCount == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: practicescreen.New(s.gateway, s.recorder, s.player, s.log, course),
					}
				}
			},
		}
	}
	return items
}

func (s *CoursesScreen) loadCourses() tea.Cmd {
	gateway := s.gateway
	return func() tea.Msg {
		courses, err := gateway.ListCourses(context.Background())
		return coursesLoadedMsg{Courses: courses, Err: err}
	}
}

func describeError(err error) string {
	if tutor.KindOf(err) == tutor.KindUnreachable {
		return "Can't reach the tutor server. Is it running?"
	}
	return err.Error()
}
