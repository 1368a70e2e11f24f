package components

import (
	"fmt"
	"strings"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/ui/theme"
)

// StatusCard renders a hunter's progress. Quests and Briefing are optional.
type StatusCard struct {
	Status   progression.Status
	Ladder   *rank.Ladder
	Quests   []progression.DailyQuest
	Briefing *briefing.Briefing
	// Cursor highlights a quest row when non-negative.
	Cursor int
	Width  int
}

// NewStatusCard returns a card without a highlighted quest.
func NewStatusCard(st progression.Status, ladder *rank.Ladder, width int) StatusCard {
	return StatusCard{Status: st, Ladder: ladder, Cursor: -1, Width: width}
}

// View renders the card.
func (c StatusCard) View() string {
	st := c.Status
	inner := max(c.Width-6, 20)
	var b strings.Builder

	b.WriteString(RankTitle(c.Ladder.Config(st.Profile.Rank)))
	b.WriteString("  ")
	b.WriteString(theme.Body.Bold(true).Render(st.Profile.Name))
	b.WriteString("\n\n")

	if st.IsMaxRank {
		b.WriteString(theme.Gold.Render(fmt.Sprintf("Peak rank reached. %d XP total.", st.Profile.TotalXP)))
		b.WriteByte('\n')
	} else {
		xp := NewProgressBar("XP  ", st.XP.Percentage/100, inner)
		xp.Fill = theme.RankColor(st.NextRank)
		xp.Caption = fmt.Sprintf("%d/%d", st.XP.Current, st.XP.Max)
		b.WriteString(xp.View())
		b.WriteByte('\n')

		days := NewProgressBar("Days", st.Days.Percentage/100, inner)
		days.Caption = fmt.Sprintf("%d/%d", st.Days.DaysCompleted, st.Days.DaysRequired)
		b.WriteString(days.View())
		b.WriteByte('\n')
		b.WriteString(theme.Subtitle.Render("Next: " + c.Ladder.Config(st.NextRank).DisplayName))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	streak := fmt.Sprintf("Streak %d days", st.EffectiveStreak)
	if st.BoostPercent > 0 {
		streak += fmt.Sprintf("  +%d%% XP", st.BoostPercent)
	}
	b.WriteString(theme.Gold.Render(streak))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  next milestone %d", st.NextMilestone)))
	b.WriteByte('\n')

	if len(c.Quests) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render(fmt.Sprintf("Daily quests %d/%d", st.QuestsDone, st.QuestsTotal)))
		b.WriteByte('\n')
		for i, q := range c.Quests {
			b.WriteString(c.questLine(i, q))
			b.WriteByte('\n')
		}
	}

	if c.Briefing != nil {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render(c.Briefing.Headline))
		b.WriteByte('\n')
		b.WriteString(theme.Hint.Width(inner).Render(c.Briefing.Message))
	}

	return theme.Card.Width(c.Width).Render(strings.TrimRight(b.String(), "\n"))
}

func (c StatusCard) questLine(i int, q progression.DailyQuest) string {
	mark := "[ ]"
	if q.Completed {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %d. %-28s %-10s %3d XP", mark, q.Position, q.Title, rank.CategoryDisplayName(q.Category), q.XPReward)
	switch {
	case i == c.Cursor:
		return theme.Selected.Render("▸ " + line)
	case q.Completed:
		return theme.Done.Render("  " + line)
	default:
		return theme.Body.Render("  " + line)
	}
}
