package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-system/hunter/internal/ui/layout"
)

type stubScreen struct {
	title   string
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd                    { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string             { return s.title }
func (s *stubScreen) Title() string                    { return s.title }

type hintedScreen struct{ stubScreen }

func (hintedScreen) KeyHints() []layout.KeyHint { return []layout.KeyHint{{Key: "q", Description: "Quit"}} }

func TestPushPop(t *testing.T) {
	first := &stubScreen{title: "first"}
	second := &stubScreen{title: "second"}
	r := New(first)

	r.Update(PushMsg{Screen: second})
	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "second", r.Active().Title())
	assert.Equal(t, 1, second.inits)

	r.Update(PopMsg{})
	assert.Equal(t, "first", r.Active().Title())

	r.Update(PopMsg{})
	assert.Equal(t, 1, r.Depth(), "bottom screen is never popped")
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "assessment"})
	board := &stubScreen{title: "quests"}

	r.Update(Replace(board)())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "quests", r.Active().Title())
	assert.Equal(t, 1, board.inits)
}

func TestForwardsToActive(t *testing.T) {
	first := &stubScreen{title: "first"}
	second := &stubScreen{title: "second"}
	r := New(first)
	r.Update(Push(second)())

	r.Update(tea.KeyPressMsg{Code: 'x'})
	assert.Equal(t, 0, first.updates)
	assert.Equal(t, 1, second.updates)
}

func TestHints(t *testing.T) {
	r := New(&stubScreen{})
	assert.Nil(t, r.Hints())

	r.Update(PushMsg{Screen: &hintedScreen{}})
	assert.Len(t, r.Hints(), 1)
}
