package rank

import "errors"

// ErrAlreadyCompleted is returned when completing a quest twice.
var ErrAlreadyCompleted = errors.New("quest already completed")

// Quest is one task in a daily batch.
type Quest struct {
	ID          string     `json:"id"`
	Rank        Rank       `json:"rank"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	XPReward    int        `json:"xp_reward"`
	Difficulty  Difficulty `json:"difficulty"`
	Completed   bool       `json:"completed"`
}

// Complete flips the quest to completed. Completion happens once.
func (q *Quest) Complete() error {
	if q.Completed {
		return ErrAlreadyCompleted
	}
	q.Completed = true
	return nil
}
