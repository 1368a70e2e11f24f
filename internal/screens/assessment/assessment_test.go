package assessment

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quiz "github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/router"
)

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func send(t *testing.T, s router.Screen, msgs ...tea.Msg) (router.Screen, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, m := range msgs {
		s, cmd = s.Update(m)
	}
	return s, cmd
}

func TestWalkEntireQuestionnaireWithTopScore(t *testing.T) {
	s := New()
	var cmd tea.Cmd
	for range quiz.Questions() {
		_, cmd = send(t, s, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter))
	}
	require.True(t, s.Finished())
	require.NotNil(t, cmd)

	msg, ok := cmd().(FinishedMsg)
	require.True(t, ok)
	require.Len(t, msg.Answers, len(quiz.Questions()))

	result, err := quiz.Evaluate(rank.Default(), msg.Answers)
	require.NoError(t, err)
	assert.Equal(t, quiz.MaxScore(), result.TotalScore)
	assert.Equal(t, rank.D, result.Rank)
}

func TestDefaultSelectionIsMiddleOption(t *testing.T) {
	s := New()
	send(t, s, key(tea.KeyEnter))
	require.Len(t, s.Answers(), 1)
	assert.Equal(t, 3, s.Answers()[0].Score)
	assert.Contains(t, s.View(100, 40), "Question 2 of 30")
}

func TestBackRestoresPreviousAnswer(t *testing.T) {
	s := New()
	send(t, s, key('1'), key(tea.KeyEnter))
	send(t, s, key(tea.KeyLeft))

	assert.Empty(t, s.Answers())
	assert.Equal(t, 0, s.choice.Cursor)
	assert.Contains(t, s.View(100, 40), "Question 1 of 30")

	send(t, s, key(tea.KeyLeft))
	assert.Equal(t, 0, s.index, "back on the first question is a no-op")
}

func TestEscCancels(t *testing.T) {
	_, cmd := send(t, New(), key(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{}, cmd())
}
