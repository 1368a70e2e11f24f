package quests

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

type fakeSource struct {
	quests    []progression.DailyQuest
	loadErr   error
	completed []string
}

func (f *fakeSource) TodayQuests(context.Context, string, time.Time) ([]progression.DailyQuest, error) {
	return f.quests, f.loadErr
}

func (f *fakeSource) Status(context.Context, string, time.Time) (*progression.Status, error) {
	done := 0
	for _, q := range f.quests {
		if q.Completed {
			done++
		}
	}
	return &progression.Status{
		Profile:     progression.Profile{ID: "h1", Name: "Jinwoo", Rank: rank.E},
		NextRank:    rank.D,
		QuestsDone:  done,
		QuestsTotal: len(f.quests),
	}, nil
}

func (f *fakeSource) CompleteQuest(_ context.Context, _, questID string, _ time.Time) (*progression.Completion, error) {
	for i := range f.quests {
		if f.quests[i].ID != questID {
			continue
		}
		f.quests[i].Completed = true
		f.completed = append(f.completed, questID)
		return &progression.Completion{
			Quest:       f.quests[i],
			XPAwarded:   11,
			RankAfter:   rank.D,
			RankChanged: true,
		}, nil
	}
	return nil, progression.ErrQuestNotFound
}

type fixedBriefer struct{}

func (fixedBriefer) Compose(context.Context, progression.Status, []progression.DailyQuest, time.Time) briefing.Briefing {
	return briefing.Briefing{Headline: "Arise", Message: "Go.", Source: briefing.SourceSystem}
}

func newBoard(src *fakeSource, b Briefer) *Screen {
	now := func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return New(context.Background(), src, b, rank.DefaultLadder(), "h1", now)
}

func sampleQuests() []progression.DailyQuest {
	return []progression.DailyQuest{
		{Quest: rank.Quest{ID: "q1", Title: "Read 10 Pages", Category: rank.CategoryMind, XPReward: 10, Completed: true}, Position: 1},
		{Quest: rank.Quest{ID: "q2", Title: "Plan Tomorrow", Category: rank.CategoryWork, XPReward: 10}, Position: 2},
	}
}

func TestLoadThenBrief(t *testing.T) {
	s := newBoard(&fakeSource{quests: sampleQuests()}, fixedBriefer{})
	assert.True(t, s.busy())

	_, cmd := s.Update(s.load()())
	require.NotNil(t, cmd, "first load asks for a briefing")
	s.Update(cmd())

	assert.False(t, s.busy())
	view := s.View(100, 40)
	assert.Contains(t, view, "Jinwoo")
	assert.Contains(t, view, "Read 10 Pages")
	assert.Contains(t, view, "Arise")
	assert.Equal(t, "Daily Quests", s.Title())
	assert.NotEmpty(t, s.StatusLine())
}

func TestCompleteSelectedQuest(t *testing.T) {
	src := &fakeSource{quests: sampleQuests()}
	s := newBoard(src, nil)
	s.Update(s.load()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, reload := s.Update(cmd())
	assert.Equal(t, []string{"q2"}, src.completed)
	assert.Contains(t, s.notice, "+11 XP")
	assert.Contains(t, s.notice, "D-Rank Hunter")
	require.NotNil(t, reload)

	s.Update(reload())
	assert.Equal(t, 2, s.status.QuestsDone)
}

func TestCompletedQuestIsNotResubmitted(t *testing.T) {
	src := &fakeSource{quests: sampleQuests()}
	s := newBoard(src, nil)
	s.Update(s.load()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, s.notice, "already cleared")
	assert.Empty(t, src.completed)
}

func TestCompletionErrorShown(t *testing.T) {
	s := newBoard(&fakeSource{quests: sampleQuests()}, nil)
	s.Update(s.load()())
	s.Update(completedMsg{err: progression.ErrQuestExpired})
	assert.Contains(t, s.notice, "another day")
}

func TestLoadError(t *testing.T) {
	s := newBoard(&fakeSource{loadErr: errors.New("db locked")}, nil)
	s.Update(s.load()())
	assert.Contains(t, s.View(100, 40), "db locked")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r'})
	assert.NotNil(t, cmd, "r retries")
}

func TestCursorBounds(t *testing.T) {
	s := newBoard(&fakeSource{quests: sampleQuests()}, nil)
	s.Update(s.load()())
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: 'j'})
	}
	assert.Equal(t, 1, s.cursor)
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	assert.Equal(t, 0, s.cursor)
}
