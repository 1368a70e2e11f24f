package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice("How often?", []string{"never", "sometimes", "always"}, 0)

	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 0, m.Cursor, "cursor stops at the top")

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 2, m.Cursor, "cursor stops at the bottom")
	assert.False(t, m.Done())

	m, _ = m.Update(press('k'))
	m, _ = m.Update(press(tea.KeyEnter))
	assert.True(t, m.Done())
	assert.Equal(t, 1, m.Chosen)

	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 1, m.Cursor, "input ignored after choosing")
}

func TestMultiChoice_DigitJumps(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"}, 0)
	m, _ = m.Update(press('3'))
	assert.Equal(t, 2, m.Cursor)
	m, _ = m.Update(press('9'))
	assert.Equal(t, 2, m.Cursor, "out of range digit ignored")
}

func TestMultiChoice_StartClamped(t *testing.T) {
	assert.Equal(t, 0, NewMultiChoice("q", []string{"a"}, 5).Cursor)
}

func TestMultiChoice_View(t *testing.T) {
	view := NewMultiChoice("Pick one", []string{"alpha", "beta"}, 1).View()
	assert.Contains(t, view, "Pick one")
	assert.Contains(t, view, "▸ 2. beta")
}

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		bar := NewProgressBar("XP", pct, 40).View()
		assert.Equal(t, 40, lipgloss.Width(bar), "percent %v", pct)
	}
}

func TestProgressBar_Caption(t *testing.T) {
	p := NewProgressBar("", 0.25, 30)
	assert.Contains(t, p.View(), "25%")
	p.Caption = "3/7 days"
	assert.Contains(t, p.View(), "3/7 days")
}

func TestRankBadge(t *testing.T) {
	assert.Contains(t, RankBadge(rank.SS), "SS")
	assert.Contains(t, RankTitle(rank.DefaultLadder().Config(rank.C)), "C-Rank Hunter")
}

func TestStatusCard(t *testing.T) {
	st := progression.Status{
		Profile:         progression.Profile{Name: "Jinwoo", Rank: rank.C, TotalXP: 900},
		EffectiveStreak: 8,
		BoostPercent:    2,
		NextMilestone:   14,
		NextRank:        rank.B,
		XP:              rank.XPProgress{Current: 900, Max: 1500, Percentage: 20},
		Days:            rank.DaysProgress{DaysCompleted: 3, DaysRequired: 45, Percentage: 6},
		QuestsDone:      1,
		QuestsTotal:     2,
	}
	card := NewStatusCard(st, rank.DefaultLadder(), 80)
	card.Quests = []progression.DailyQuest{
		{Quest: rank.Quest{Title: "Deep Work Session", Category: rank.CategoryMind, XPReward: 20, Completed: true}, Position: 1},
		{Quest: rank.Quest{Title: "Intermediate Training", Category: rank.CategoryBody, XPReward: 20}, Position: 2},
	}
	card.Briefing = &briefing.Briefing{Headline: "Arise", Message: "Keep going."}
	card.Cursor = 1

	view := card.View()
	assert.Contains(t, view, "Jinwoo")
	assert.Contains(t, view, "900/1500")
	assert.Contains(t, view, "3/45")
	assert.Contains(t, view, "+2% XP")
	assert.Contains(t, view, "[x] 1. Deep Work Session")
	assert.Contains(t, view, "▸ [ ] 2. Intermediate Training")
	assert.Contains(t, view, "Arise")
	assert.Contains(t, view, "B-Rank Hunter")
}

func TestStatusCard_MaxRank(t *testing.T) {
	st := progression.Status{Profile: progression.Profile{Rank: rank.SS, TotalXP: 99000}, IsMaxRank: true}
	view := NewStatusCard(st, rank.DefaultLadder(), 60).View()
	assert.Contains(t, view, "Peak rank reached")
	assert.NotContains(t, view, "Next:")
}
