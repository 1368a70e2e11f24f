// Package quests is the daily quest board: status, briefing and the quest
// list, with completion from the keyboard.
package quests

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/router"
	"github.com/hunter-system/hunter/internal/ui/components"
	"github.com/hunter-system/hunter/internal/ui/layout"
	"github.com/hunter-system/hunter/internal/ui/theme"
)

// Source is the slice of the progression service the board needs.
type Source interface {
	TodayQuests(ctx context.Context, id string, asOf time.Time) ([]progression.DailyQuest, error)
	Status(ctx context.Context, id string, asOf time.Time) (*progression.Status, error)
	CompleteQuest(ctx context.Context, id, questID string, asOf time.Time) (*progression.Completion, error)
}

// Briefer composes the daily briefing.
type Briefer interface {
	Compose(ctx context.Context, st progression.Status, quests []progression.DailyQuest, asOf time.Time) briefing.Briefing
}

type loadedMsg struct {
	status *progression.Status
	quests []progression.DailyQuest
	err    error
}

type briefedMsg briefing.Briefing

type completedMsg struct {
	completion *progression.Completion
	err        error
}

// Screen is the quest board for one hunter.
type Screen struct {
	ctx      context.Context
	src      Source
	briefer  Briefer
	ladder   *rank.Ladder
	hunterID string
	now      func() time.Time

	loading  bool
	spinner  components.Spinner
	status   *progression.Status
	quests   []progression.DailyQuest
	briefing *briefing.Briefing
	cursor   int
	notice   string
	err      error
}

var _ router.Screen = (*Screen)(nil)

// New returns a board. briefer may be nil; now defaults to time.Now.
func New(ctx context.Context, src Source, briefer Briefer, ladder *rank.Ladder, hunterID string, now func() time.Time) *Screen {
	if now == nil {
		now = time.Now
	}
	return &Screen{
		ctx:      ctx,
		src:      src,
		briefer:  briefer,
		ladder:   ladder,
		hunterID: hunterID,
		now:      now,
		loading:  true,
		spinner:  components.NewSpinner("Summoning today's quests"),
	}
}

func (s *Screen) Title() string { return "Daily Quests" }

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Init(), s.load())
}

func (s *Screen) load() tea.Cmd {
	ctx, src, id, asOf := s.ctx, s.src, s.hunterID, s.now()
	return func() tea.Msg {
		quests, err := src.TodayQuests(ctx, id, asOf)
		if err != nil {
			return loadedMsg{err: err}
		}
		st, err := src.Status(ctx, id, asOf)
		return loadedMsg{status: st, quests: quests, err: err}
	}
}

func (s *Screen) brief() tea.Cmd {
	if s.briefer == nil || s.status == nil {
		return nil
	}
	ctx, b, st, quests, asOf := s.ctx, s.briefer, *s.status, s.quests, s.now()
	return func() tea.Msg {
		return briefedMsg(b.Compose(ctx, st, quests, asOf))
	}
}

func (s *Screen) complete(questID string) tea.Cmd {
	ctx, src, id, asOf := s.ctx, s.src, s.hunterID, s.now()
	return func() tea.Msg {
		c, err := src.CompleteQuest(ctx, id, questID, asOf)
		return completedMsg{completion: c, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		first := s.status == nil
		s.loading = false
		s.err = msg.err
		if msg.err != nil {
			return s, nil
		}
		s.status = msg.status
		s.quests = msg.quests
		s.cursor = min(s.cursor, max(len(s.quests)-1, 0))
		if first {
			return s, s.brief()
		}
		return s, nil

	case briefedMsg:
		b := briefing.Briefing(msg)
		s.briefing = &b
		return s, nil

	case completedMsg:
		if msg.err != nil {
			s.notice = theme.Warn.Render(msg.err.Error())
			return s, nil
		}
		s.notice = describe(msg.completion, s.ladder)
		return s, s.load()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.busy() {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// busy reports whether the spinner should be animating.
func (s *Screen) busy() bool {
	return s.loading || (s.briefer != nil && s.briefing == nil && s.err == nil)
}

func (s *Screen) handleKey(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "q", "esc":
		return tea.Quit
	case "r":
		s.notice = ""
		return s.load()
	}
	if s.loading || len(s.quests) == 0 {
		return nil
	}
	switch key.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(s.quests)-1)
	case "enter", "space":
		q := s.quests[s.cursor]
		if q.Completed {
			s.notice = theme.Subtitle.Render(q.Title + " is already cleared.")
			return nil
		}
		return s.complete(q.ID)
	}
	return nil
}

// describe turns a completion into a one-line system message.
func describe(c *progression.Completion, ladder *rank.Ladder) string {
	head := fmt.Sprintf("Quest cleared: %s. +%d XP", c.Quest.Title, c.XPAwarded)
	if c.BoostPercent > 0 {
		head += fmt.Sprintf(" (streak +%d%%)", c.BoostPercent)
	}
	lines := []string{theme.Done.Render(head)}
	if c.RankChanged {
		lines = append(lines, theme.Gold.Render("Rank up! You are now "+ladder.Config(c.RankAfter).DisplayName+"."))
	}
	if c.DayComplete {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("All quests cleared. Streak: %d days.", c.StreakDays)))
	}
	if c.Milestone > 0 {
		lines = append(lines, theme.Gold.Render(fmt.Sprintf("%d-day milestone reached!", c.Milestone)))
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return theme.Warn.Render("Could not load quests: "+s.err.Error()) + "\n\n" + theme.Hint.Render("Press r to retry.")
	}
	if s.status == nil {
		return s.spinner.View()
	}

	card := components.NewStatusCard(*s.status, s.ladder, min(width, 90))
	card.Quests = s.quests
	card.Briefing = s.briefing
	card.Cursor = s.cursor

	out := card.View()
	if s.busy() {
		out += "\n" + s.spinner.View()
	}
	if s.notice != "" {
		out += "\n\n" + s.notice
	}
	return out
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Complete"},
		{Key: "r", Description: "Refresh"},
		{Key: "q", Description: "Quit"},
	}
}

// StatusLine is a short summary for the header bar.
func (s *Screen) StatusLine() string {
	if s.status == nil {
		return ""
	}
	return components.RankBadge(s.status.Profile.Rank) + theme.Gold.Render(fmt.Sprintf("  %dd", s.status.EffectiveStreak))
}
