// Package briefing writes the short daily message shown above a hunter's
// quests. A configured LLM personalises it; otherwise a rotating quote is
// used.
package briefing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/llm"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

// Sources of a Briefing.
const (
	SourceSystem = "system"
	SourceLLM    = "llm"
)

const maxTokens = 300

// Briefing is the daily message.
type Briefing struct {
	Headline string `json:"headline"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// Schema is the shape requested from the model.
var Schema = &llm.Schema{
	Name:        "hunter-briefing",
	Description: "A short motivational briefing for a hunter's daily quests",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One punchy line, at most 8 words",
			},
			"message": map[string]any{
				"type":        "string",
				"description": "Two or three sentences addressing the hunter directly",
			},
		},
		"required":             []any{"headline", "message"},
		"additionalProperties": false,
	},
}

// Composer builds briefings. The zero value is not usable; call New.
type Composer struct {
	provider llm.Provider
	ladder   *rank.Ladder
	logger   *zap.Logger
}

// New returns a Composer. A nil provider always yields the quote.
func New(provider llm.Provider, ladder *rank.Ladder, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ladder == nil {
		ladder = rank.DefaultLadder()
	}
	return &Composer{provider: provider, ladder: ladder, logger: logger}
}

// Compose writes today's briefing. It never fails: provider errors fall back
// to the quote and are logged.
func (c *Composer) Compose(ctx context.Context, st progression.Status, quests []progression.DailyQuest, asOf time.Time) Briefing {
	fallback := Briefing{
		Headline: c.headline(st),
		Message:  QuoteFor(asOf.Day()),
		Source:   SourceSystem,
	}
	if c.provider == nil {
		return fallback
	}

	req := llm.Prompt(systemPrompt, c.userMessage(st, quests, asOf), Schema, maxTokens)
	resp, err := c.provider.Generate(llm.WithPurpose(ctx, "briefing"), req)
	if err != nil {
		c.logger.Warn("briefing fell back to quote", zap.String("hunter_id", st.Profile.ID), zap.Error(err))
		return fallback
	}
	out, err := llm.Decode[Briefing](resp)
	if err != nil || strings.TrimSpace(out.Message) == "" {
		c.logger.Warn("briefing response unusable", zap.String("hunter_id", st.Profile.ID), zap.Error(err))
		return fallback
	}
	out.Source = SourceLLM
	if strings.TrimSpace(out.Headline) == "" {
		out.Headline = fallback.Headline
	}
	return out
}

func (c *Composer) headline(st progression.Status) string {
	name := c.ladder.Config(st.Profile.Rank).DisplayName
	if st.QuestsDone >= st.QuestsTotal && st.QuestsTotal > 0 {
		return fmt.Sprintf("%s: all %d quests cleared", name, st.QuestsTotal)
	}
	return fmt.Sprintf("%s: %d of %d quests cleared", name, st.QuestsDone, st.QuestsTotal)
}

const systemPrompt = `You are the System from a hunter-ranking world. You speak to one hunter each morning in a terse, commanding, encouraging voice. Never invent quests or numbers that are not in the briefing data. No emojis.`

func (c *Composer) userMessage(st progression.Status, quests []progression.DailyQuest, asOf time.Time) string {
	var b strings.Builder
	cfg := c.ladder.Config(st.Profile.Rank)

	fmt.Fprintf(&b, "Hunter: %s\n", st.Profile.Name)
	fmt.Fprintf(&b, "Date: %s\n", asOf.Format("Monday 2 January 2006"))
	fmt.Fprintf(&b, "Rank: %s (%s)\n", cfg.DisplayName, cfg.Description)
	if st.IsMaxRank {
		b.WriteString("Progress: terminal rank reached\n")
	} else {
		fmt.Fprintf(&b, "Progress to %s: %.0f%% XP, %d of %d days\n",
			st.NextRank, st.XP.Percentage, st.Days.DaysCompleted, st.Days.DaysRequired)
	}
	fmt.Fprintf(&b, "Streak: %d days (+%d%% XP), next milestone %d\n",
		st.EffectiveStreak, st.BoostPercent, st.NextMilestone)

	b.WriteString("\nToday's quests:\n")
	for _, q := range quests {
		mark := " "
		if q.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s (%s, %d XP): %s\n", mark, q.Title, rank.CategoryDisplayName(q.Category), q.XPReward, q.Description)
	}

	b.WriteString("\nWrite a headline and a short message that pushes the hunter toward the remaining quests.")
	return b.String()
}
