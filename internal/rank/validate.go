package rank

import (
	"fmt"
	"strings"
)

// validateLadder performs all structural checks on a ladder definition.
// Returns a combined error describing all problems found, or nil if valid.
func validateLadder(configs []Config, rules AssessmentRules) error {
	if len(configs) == 0 {
		return fmt.Errorf("rank ladder validation failed:\n  ladder has no ranks")
	}

	var errs []string
	index := make(map[Rank]int, len(configs))

	for i, c := range configs {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("rank at position %d has an empty ID", i))
			continue
		}
		if _, dup := index[c.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate rank ID: %q", c.ID))
			continue
		}
		index[c.ID] = i
	}

	if configs[0].MinXP != 0 {
		errs = append(errs, fmt.Sprintf("lowest rank %q must have MinXP 0, got %d", configs[0].ID, configs[0].MinXP))
	}

	last := len(configs) - 1
	for i, c := range configs {
		if i > 0 && c.MinXP <= configs[i-1].MinXP {
			errs = append(errs, fmt.Sprintf("rank %q: MinXP %d must be greater than %q MinXP %d",
				c.ID, c.MinXP, configs[i-1].ID, configs[i-1].MinXP))
		}
		if i == last {
			if c.XPToNext != 0 {
				errs = append(errs, fmt.Sprintf("terminal rank %q: XPToNext must be 0, got %d", c.ID, c.XPToNext))
			}
			if c.DaysToNext != 0 {
				errs = append(errs, fmt.Sprintf("terminal rank %q: DaysToNext must be 0, got %d", c.ID, c.DaysToNext))
			}
			continue
		}
		if span := configs[i+1].MinXP - c.MinXP; c.XPToNext != span {
			errs = append(errs, fmt.Sprintf("rank %q: XPToNext %d does not match threshold span %d", c.ID, c.XPToNext, span))
		}
		if c.DaysToNext <= 0 {
			errs = append(errs, fmt.Sprintf("rank %q: DaysToNext must be > 0, got %d", c.ID, c.DaysToNext))
		}
	}

	errs = append(errs, validateAssessment(rules, index)...)

	if len(errs) > 0 {
		return fmt.Errorf("rank ladder validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateAssessment(rules AssessmentRules, index map[Rank]int) []string {
	var errs []string

	ceiling, hasCeiling := index[rules.Ceiling]
	if !hasCeiling {
		errs = append(errs, fmt.Sprintf("assessment ceiling %q is not on the ladder", rules.Ceiling))
	}
	if len(rules.Bands) == 0 {
		errs = append(errs, "assessment has no score bands")
	}

	prevRank := -1
	for i, b := range rules.Bands {
		if b.MinScore < 0 {
			errs = append(errs, fmt.Sprintf("assessment band %d: MinScore must be >= 0, got %d", i, b.MinScore))
		}
		if i > 0 && b.MinScore <= rules.Bands[i-1].MinScore {
			errs = append(errs, fmt.Sprintf("assessment band %d: MinScore %d must be greater than %d",
				i, b.MinScore, rules.Bands[i-1].MinScore))
		}
		pos, ok := index[b.Rank]
		if !ok {
			errs = append(errs, fmt.Sprintf("assessment band %d references unknown rank %q", i, b.Rank))
			continue
		}
		if pos < prevRank {
			errs = append(errs, fmt.Sprintf("assessment band %d: rank %q is lower than the previous band", i, b.Rank))
		}
		if hasCeiling && pos > ceiling {
			errs = append(errs, fmt.Sprintf("assessment band %d: rank %q exceeds ceiling %q", i, b.Rank, rules.Ceiling))
		}
		prevRank = pos
	}
	return errs
}
