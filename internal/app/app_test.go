package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quiz "github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/screens/assessment"
	"github.com/hunter-system/hunter/internal/store"
)

var day1 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newDeps(t *testing.T) Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "hunter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := progression.NewService(rank.Default(), st)
	p, err := svc.Enroll(context.Background(), "Jinwoo", day1)
	require.NoError(t, err)
	return Deps{Service: svc, HunterID: p.ID, Now: func() time.Time { return day1 }}
}

func topAnswers(t *testing.T) []quiz.Answer {
	scores := make([]int, len(quiz.Questions()))
	for i := range scores {
		scores[i] = quiz.MaxOptionScore
	}
	answers, err := quiz.AnswersFromScores(scores)
	require.NoError(t, err)
	return answers
}

func TestNewHunterStartsWithAssessment(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t)
	m, err := newAppModel(ctx, deps)
	require.NoError(t, err)
	assert.Equal(t, "Assessment", m.router.Active().Title())

	_, cmd := m.Update(assessment.FinishedMsg{Answers: topAnswers(t)})
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd, "assessment result switches to the board")
	m.Update(cmd())
	assert.Equal(t, "Daily Quests", m.router.Active().Title())

	p, err := deps.Service.Profile(ctx, deps.HunterID)
	require.NoError(t, err)
	assert.Equal(t, rank.D, p.Rank)
}

func TestAssessedHunterStartsOnBoard(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(t)
	_, err := deps.Service.SubmitAssessment(ctx, deps.HunterID, topAnswers(t), day1)
	require.NoError(t, err)

	m, err := newAppModel(ctx, deps)
	require.NoError(t, err)
	assert.Equal(t, "Daily Quests", m.router.Active().Title())
}

func TestUnknownHunter(t *testing.T) {
	deps := newDeps(t)
	deps.HunterID = "nobody"
	_, err := newAppModel(context.Background(), deps)
	assert.ErrorIs(t, err, progression.ErrHunterNotFound)
}

func TestStandaloneAssessmentQuitsOnFinish(t *testing.T) {
	m := newModel(assessment.New())
	_, cmd := m.Update(assessment.FinishedMsg{Answers: topAnswers(t)})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Len(t, m.answers, len(quiz.Questions()))
	assert.False(t, m.cancelled)
}

func TestCancel(t *testing.T) {
	m := newModel(assessment.New())
	m.Update(assessment.CancelledMsg{})
	assert.True(t, m.cancelled)
}

func TestView(t *testing.T) {
	m := newModel(assessment.New())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	frame := m.frame()
	assert.Contains(t, frame, "Question 1 of 30")
	assert.Contains(t, frame, "HUNTER SYSTEM")

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.frame(), "too small")
}
