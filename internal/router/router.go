package router

import (
	"github.com/kennt44/teachme/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the active screen in place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// StatusMsg replaces the single status line shown beneath the content.
// There is exactly one slot: a new message overwrites the previous one.
type StatusMsg struct {
	Text string
}

// SetStatus returns a command that publishes a status message.
func SetStatus(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

// ClearStatus returns a command that empties the status line.
func ClearStatus() tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{}
	}
}

// Refresher is implemented by screens that want to reload their data
// when a pop makes them active again.
type Refresher interface {
	Refresh() tea.Cmd
}

// Router manages a stack of screens and the shared status line.
type Router struct {
	stack  []screen.Screen
	status string
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.status = ""
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
// The revealed screen gets a Refresh call if it wants one.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.status = ""
	if refresher, ok := r.Active().(Refresher); ok {
		return refresher.Refresh()
	}
	return nil
}

// Replace swaps the active screen without changing stack depth and
// calls the new screen's Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	r.status = ""
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Status returns the current status line, empty when none.
func (r *Router) Status() string {
	return r.status
}

// Update forwards a message to the active screen and handles navigation
// and status messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case StatusMsg:
		r.status = msg.Text
		return nil
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
