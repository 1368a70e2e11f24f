package rank

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDFunc produces a quest ID. It must return distinct values for repeated
// calls with identical arguments.
type IDFunc func(r Rank, c Category, asOf time.Time) string

// Engine computes ranks, progress and daily quests for a ladder. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	ladder    *Ladder
	templates map[Rank]map[Category]Template
	newID     IDFunc
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	templates []Template
	newID     IDFunc
}

// WithTemplates replaces the built-in quest templates.
func WithTemplates(t []Template) Option {
	return func(o *engineOptions) { o.templates = t }
}

// WithIDFunc replaces the quest ID generator.
func WithIDFunc(fn IDFunc) Option {
	return func(o *engineOptions) { o.newID = fn }
}

// NewEngine builds an engine over l. The template set must cover every rank
// and category on the ladder.
func NewEngine(l *Ladder, opts ...Option) (*Engine, error) {
	if l == nil {
		return nil, fmt.Errorf("nil ladder")
	}
	o := engineOptions{templates: DefaultTemplates(), newID: defaultQuestID}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newID == nil {
		o.newID = defaultQuestID
	}

	byRank, err := indexTemplates(l, o.templates)
	if err != nil {
		return nil, err
	}
	return &Engine{ladder: l, templates: byRank, newID: o.newID}, nil
}

func defaultQuestID(r Rank, c Category, asOf time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%s", r, c, asOf.UnixMilli(), uuid.NewString())
}

// indexTemplates checks template coverage and reward monotonicity and
// returns the templates keyed by rank and category.
func indexTemplates(l *Ladder, templates []Template) (map[Rank]map[Category]Template, error) {
	var errs []string
	byRank := make(map[Rank]map[Category]Template, l.Len())

	for _, t := range templates {
		if !l.Contains(t.Rank) {
			// Shorter custom ladders leave some built-in templates unused.
			continue
		}
		if !t.Category.Valid() {
			errs = append(errs, fmt.Sprintf("template %q has unknown category %q", t.Title, t.Category))
			continue
		}
		if t.XPReward <= 0 {
			errs = append(errs, fmt.Sprintf("template %s/%s: XPReward must be > 0, got %d", t.Rank, t.Category, t.XPReward))
		}
		if byRank[t.Rank] == nil {
			byRank[t.Rank] = make(map[Category]Template)
		}
		if _, dup := byRank[t.Rank][t.Category]; dup {
			errs = append(errs, fmt.Sprintf("duplicate template for %s/%s", t.Rank, t.Category))
		}
		byRank[t.Rank][t.Category] = t
	}

	ids := l.IDs()
	for _, c := range AllCategories() {
		prev := 0
		for _, r := range ids {
			t, ok := byRank[r][c]
			if !ok {
				errs = append(errs, fmt.Sprintf("no template for %s/%s", r, c))
				continue
			}
			if t.XPReward < prev {
				errs = append(errs, fmt.Sprintf("template %s/%s: XPReward %d is lower than the rank below (%d)", r, c, t.XPReward, prev))
			}
			prev = t.XPReward
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("quest template validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return byRank, nil
}

// Ladder returns the ladder this engine operates on.
func (e *Engine) Ladder() *Ladder { return e.ladder }

// RankFromXP returns the highest rank whose MinXP is at most totalXP.
// Negative XP is treated as 0.
func (e *Engine) RankFromXP(totalXP int) Rank {
	if totalXP < 0 {
		totalXP = 0
	}
	ranks := e.ladder.ranks
	for i := len(ranks) - 1; i >= 0; i-- {
		if totalXP >= ranks[i].MinXP {
			return ranks[i].ID
		}
	}
	return ranks[0].ID
}

// RankFromAssessmentScore maps an onboarding score to a starting rank. The
// result never exceeds the assessment ceiling.
func (e *Engine) RankFromAssessmentScore(score int) Rank {
	if score < 0 {
		score = 0
	}
	out := e.ladder.Lowest()
	for _, b := range e.ladder.assessment.Bands {
		if score < b.MinScore {
			break
		}
		out = b.Rank
	}
	return out
}

// NextRank returns the rank immediately above r, or false at the terminal
// rank.
func (e *Engine) NextRank(r Rank) (Rank, bool) {
	i := e.ladder.Index(r)
	if i >= e.ladder.Len()-1 {
		return "", false
	}
	return e.ladder.ranks[i+1].ID, true
}

// PreviousRank returns the rank immediately below r, or false at the lowest
// rank.
func (e *Engine) PreviousRank(r Rank) (Rank, bool) {
	i := e.ladder.Index(r)
	if i == 0 {
		return "", false
	}
	return e.ladder.ranks[i-1].ID, true
}

// IsMaxRank reports whether r is the terminal rank.
func (e *Engine) IsMaxRank(r Rank) bool {
	return e.ladder.Index(r) == e.ladder.Len()-1
}

// XPProgress describes how far a hunter is through their current rank.
type XPProgress struct {
	Current         int     `json:"current"`
	Max             int     `json:"max"`
	Percentage      float64 `json:"percentage"`
	XPInCurrentRank int     `json:"xp_in_current_rank"`
	XPNeededForNext int     `json:"xp_needed_for_next"`
}

// XPProgress computes the progress bar for currentXP within rank r.
func (e *Engine) XPProgress(currentXP int, r Rank) XPProgress {
	if currentXP < 0 {
		currentXP = 0
	}
	cfg := e.ladder.Config(r)
	in := max(0, currentXP-cfg.MinXP)

	next, ok := e.NextRank(r)
	if !ok {
		return XPProgress{
			Current:         currentXP,
			Max:             currentXP,
			Percentage:      100,
			XPInCurrentRank: in,
			XPNeededForNext: 0,
		}
	}

	nextMin := e.ladder.Config(next).MinXP
	needed := nextMin - cfg.MinXP
	pct := 100.0
	if needed > 0 {
		pct = clampPercent(float64(in) / float64(needed) * 100)
	}
	return XPProgress{
		Current:         cfg.MinXP + in,
		Max:             nextMin,
		Percentage:      pct,
		XPInCurrentRank: in,
		XPNeededForNext: needed,
	}
}

// DaysProgress describes time served at the current rank.
type DaysProgress struct {
	DaysCompleted int     `json:"days_completed"`
	DaysRequired  int     `json:"days_required"`
	Percentage    float64 `json:"percentage"`
	DaysRemaining int     `json:"days_remaining"`
}

// DaysProgress computes day-based progress at rank r as of asOf. Days served
// is the larger of whole days since assignment and the streak, both capped
// at the requirement. A zero assignedAt counts as no days elapsed.
func (e *Engine) DaysProgress(assignedAt time.Time, streakDays int, r Rank, asOf time.Time) DaysProgress {
	if streakDays < 0 {
		streakDays = 0
	}
	required := e.ladder.Config(r).DaysToNext
	if required <= 0 {
		return DaysProgress{
			DaysCompleted: streakDays,
			DaysRequired:  0,
			Percentage:    100,
			DaysRemaining: 0,
		}
	}

	elapsed := 0
	if !assignedAt.IsZero() {
		elapsed = int(math.Floor(asOf.Sub(assignedAt).Hours() / 24))
	}
	completed := max(clampInt(elapsed, 0, required), clampInt(streakDays, 0, required))

	return DaysProgress{
		DaysCompleted: completed,
		DaysRequired:  required,
		Percentage:    clampPercent(float64(completed) / float64(required) * 100),
		DaysRemaining: required - completed,
	}
}

// Template returns the quest template for rank r and category c. Unknown
// ranks resolve to the lowest rank.
func (e *Engine) Template(r Rank, c Category) (Template, bool) {
	t, ok := e.templates[e.ladder.Config(r).ID][c]
	return t, ok
}

// GenerateDailyQuests builds a fresh, uncompleted quest batch for rank r,
// one quest per category in AllCategories order.
func (e *Engine) GenerateDailyQuests(r Rank, asOf time.Time) []Quest {
	r = e.ladder.Config(r).ID
	cats := AllCategories()
	quests := make([]Quest, 0, len(cats))
	for _, c := range cats {
		t := e.templates[r][c]
		quests = append(quests, Quest{
			ID:          e.newID(r, c, asOf),
			Rank:        r,
			Title:       t.Title,
			Description: t.Description,
			Category:    c,
			XPReward:    t.XPReward,
			Difficulty:  t.Difficulty,
		})
	}
	return quests
}

func clampPercent(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}

func clampInt(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
