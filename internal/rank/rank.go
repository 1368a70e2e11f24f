package rank

import (
	"fmt"
	"slices"
	"strings"
)

// Rank identifies a step on the ladder.
type Rank string

const (
	E  Rank = "E"
	D  Rank = "D"
	C  Rank = "C"
	B  Rank = "B"
	A  Rank = "A"
	S  Rank = "S"
	SS Rank = "SS"
)

// Config describes a single rank on the ladder.
type Config struct {
	ID          Rank   `json:"id"`
	DisplayName string `json:"display_name"`
	MinXP       int    `json:"min_xp"`
	XPToNext    int    `json:"xp_to_next"`
	DaysToNext  int    `json:"days_to_next"`
	Description string `json:"description"`
}

// AssessmentBand maps a minimum assessment score to the rank it grants.
type AssessmentBand struct {
	MinScore int  `json:"min_score"`
	Rank     Rank `json:"rank"`
}

// AssessmentRules controls which ranks an onboarding assessment can grant.
// Ceiling is the highest rank reachable without earning XP.
type AssessmentRules struct {
	Ceiling Rank             `json:"ceiling"`
	Bands   []AssessmentBand `json:"bands"`
}

// Ladder is an immutable, validated, totally ordered sequence of ranks.
type Ladder struct {
	ranks      []Config
	index      map[Rank]int
	assessment AssessmentRules
}

// NewLadder validates configs and rules and builds a ladder from them.
// The configs must be ordered from lowest to highest rank.
func NewLadder(configs []Config, rules AssessmentRules) (*Ladder, error) {
	if err := validateLadder(configs, rules); err != nil {
		return nil, err
	}
	l := &Ladder{
		ranks: slices.Clone(configs),
		index: make(map[Rank]int, len(configs)),
		assessment: AssessmentRules{
			Ceiling: rules.Ceiling,
			Bands:   slices.Clone(rules.Bands),
		},
	}
	for i, c := range l.ranks {
		l.index[c.ID] = i
	}
	return l, nil
}

// Ranks returns every rank config from lowest to highest.
func (l *Ladder) Ranks() []Config {
	return slices.Clone(l.ranks)
}

// IDs returns the rank identifiers from lowest to highest.
func (l *Ladder) IDs() []Rank {
	ids := make([]Rank, len(l.ranks))
	for i, c := range l.ranks {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the number of ranks.
func (l *Ladder) Len() int { return len(l.ranks) }

// Lowest returns the entry rank.
func (l *Ladder) Lowest() Rank { return l.ranks[0].ID }

// Terminal returns the highest rank.
func (l *Ladder) Terminal() Rank { return l.ranks[len(l.ranks)-1].ID }

// Assessment returns the assessment rules.
func (l *Ladder) Assessment() AssessmentRules {
	return AssessmentRules{
		Ceiling: l.assessment.Ceiling,
		Bands:   slices.Clone(l.assessment.Bands),
	}
}

// Contains reports whether r is a rank on this ladder.
func (l *Ladder) Contains(r Rank) bool {
	_, ok := l.index[r]
	return ok
}

// Index returns the position of r, or 0 (the lowest rank) if r is unknown.
func (l *Ladder) Index(r Rank) int {
	return l.index[r]
}

// Config returns the config for r. Unknown ranks resolve to the lowest rank.
func (l *Ladder) Config(r Rank) Config {
	return l.ranks[l.Index(r)]
}

// Compare returns -1, 0 or +1 depending on whether a sits below, at, or
// above b.
func (l *Ladder) Compare(a, b Rank) int {
	ia, ib := l.Index(a), l.Index(b)
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	default:
		return 0
	}
}

// Parse resolves a rank identifier case-insensitively. Anything that is not
// on the ladder resolves to the lowest rank.
func (l *Ladder) Parse(s string) Rank {
	r := Rank(strings.ToUpper(strings.TrimSpace(s)))
	if l.Contains(r) {
		return r
	}
	return l.Lowest()
}

// Lookup resolves a rank identifier like Parse but reports unknown input.
func (l *Ladder) Lookup(s string) (Rank, error) {
	r := Rank(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Contains(r) {
		return "", fmt.Errorf("unknown rank: %q", s)
	}
	return r, nil
}
