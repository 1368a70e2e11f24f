package rank

import "fmt"

// defaultLadder is the built-in ladder, set by init().
var defaultLadder *Ladder

// defaultEngine wraps defaultLadder with the built-in quest templates.
var defaultEngine *Engine

func init() {
	l, err := NewLadder(defaultConfigs(), defaultAssessment())
	if err != nil {
		panic(fmt.Sprintf("built-in ladder: %v", err))
	}
	e, err := NewEngine(l)
	if err != nil {
		panic(fmt.Sprintf("built-in quest templates: %v", err))
	}
	defaultLadder = l
	defaultEngine = e
}

// DefaultLadder returns the built-in E through SS ladder.
func DefaultLadder() *Ladder { return defaultLadder }

// Default returns an engine over the built-in ladder and quest templates.
func Default() *Engine { return defaultEngine }

func defaultConfigs() []Config {
	return []Config{
		{ID: E, DisplayName: "E-Rank Hunter", MinXP: 0, XPToNext: 300, DaysToNext: 7,
			Description: "Novice Hunter - Your journey begins here"},
		{ID: D, DisplayName: "D-Rank Hunter", MinXP: 300, XPToNext: 450, DaysToNext: 30,
			Description: "Apprentice Hunter - Building your foundation"},
		{ID: C, DisplayName: "C-Rank Hunter", MinXP: 750, XPToNext: 750, DaysToNext: 45,
			Description: "Skilled Hunter - Proven dedication"},
		{ID: B, DisplayName: "B-Rank Hunter", MinXP: 1500, XPToNext: 1500, DaysToNext: 60,
			Description: "Advanced Hunter - Elite capabilities"},
		{ID: A, DisplayName: "A-Rank Hunter", MinXP: 3000, XPToNext: 3000, DaysToNext: 90,
			Description: "Master Hunter - Exceptional prowess"},
		{ID: S, DisplayName: "S-Rank Hunter", MinXP: 6000, XPToNext: 6000, DaysToNext: 120,
			Description: "Legendary Hunter - Among the strongest"},
		{ID: SS, DisplayName: "SS-Rank Hunter", MinXP: 12000, XPToNext: 0, DaysToNext: 0,
			Description: "Transcendent Hunter - Beyond human limits"},
	}
}

// A perfect 150 on the onboarding questionnaire grants D. Everything else
// starts at E.
func defaultAssessment() AssessmentRules {
	return AssessmentRules{
		Ceiling: D,
		Bands: []AssessmentBand{
			{MinScore: 0, Rank: E},
			{MinScore: 150, Rank: D},
		},
	}
}
