// Package router stacks TUI screens. The top screen receives every message.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hunter-system/hunter/internal/ui/layout"
)

// Screen is one full-window view.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the area between header and footer.
	View(width, height int) string
	Title() string
}

// KeyHinter is implemented by screens with their own footer hints.
type KeyHinter interface {
	KeyHints() []layout.KeyHint
}

// PushMsg puts Screen on top of the stack.
type PushMsg struct{ Screen Screen }

// ReplaceMsg swaps the top screen for Screen.
type ReplaceMsg struct{ Screen Screen }

// PopMsg removes the top screen.
type PopMsg struct{}

// Push returns a command that pushes s.
func Push(s Screen) tea.Cmd { return func() tea.Msg { return PushMsg{Screen: s} } }

// Replace returns a command that replaces the top screen with s.
func Replace(s Screen) tea.Cmd { return func() tea.Msg { return ReplaceMsg{Screen: s} } }

// Pop is a command that pops the top screen.
func Pop() tea.Msg { return PopMsg{} }

// Router holds the screen stack. It always has at least one screen.
type Router struct {
	stack []Screen
}

// New returns a router showing initial.
func New(initial Screen) *Router {
	return &Router{stack: []Screen{initial}}
}

// Active returns the top screen.
func (r *Router) Active() Screen { return r.stack[len(r.stack)-1] }

// Depth returns the stack size.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages, otherwise forwards msg to the top
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceMsg:
		r.stack[len(r.stack)-1] = msg.Screen
		return msg.Screen.Init()
	case PopMsg:
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
		return nil
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// Hints returns the active screen's key hints, or nil.
func (r *Router) Hints() []layout.KeyHint {
	if h, ok := r.Active().(KeyHinter); ok {
		return h.KeyHints()
	}
	return nil
}
