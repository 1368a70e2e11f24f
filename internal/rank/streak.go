package rank

// MaxStreakBoostPercent caps the XP bonus a streak can earn.
const MaxStreakBoostPercent = 20

var streakMilestones = []int{7, 14, 30, 60, 90}

// StreakBoostPercent returns the XP bonus for a streak: 2% per full week,
// capped at MaxStreakBoostPercent.
func StreakBoostPercent(streakDays int) int {
	if streakDays <= 0 {
		return 0
	}
	return min((streakDays/7)*2, MaxStreakBoostPercent)
}

// BoostedReward applies the streak bonus to a base reward, rounding down.
func BoostedReward(reward, streakDays int) int {
	if reward <= 0 {
		return 0
	}
	return reward + reward*StreakBoostPercent(streakDays)/100
}

// StreakMilestones returns the celebrated streak lengths.
func StreakMilestones() []int {
	out := make([]int, len(streakMilestones))
	copy(out, streakMilestones)
	return out
}

// NextStreakMilestone returns the next milestone above the current streak.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	// Beyond 90, every 30 days.
	return ((current / 30) + 1) * 30
}
