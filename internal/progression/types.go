package progression

import (
	"time"

	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/store"
)

// Roles.
const (
	RoleHunter = "hunter"
	RoleAdmin  = "admin"
)

// Progress event kinds.
const (
	EventEnrolled       = "enrolled"
	EventAssessed       = "assessed"
	EventQuestCompleted = "quest_completed"
	EventRankChanged    = "rank_changed"
	EventStreakUpdated  = "streak_updated"
	EventProgressReset  = "progress_reset"
	EventRoleChanged    = "role_changed"
)

// dayLayout keys quest batches and streak days.
const dayLayout = "2006-01-02"

// Profile is the public view of a hunter.
type Profile struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Role            string         `json:"role"`
	TotalXP         int            `json:"total_xp"`
	Rank            rank.Rank      `json:"rank"`
	StreakDays      int            `json:"streak_days"`
	LastStreakDate  string         `json:"last_streak_date,omitempty"`
	RankAssignedAt  time.Time      `json:"rank_assigned_at"`
	AssessmentScore *int           `json:"assessment_score,omitempty"`
	Stats           map[string]int `json:"stats,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func profileFrom(h *store.Hunter) Profile {
	return Profile{
		ID:              h.ID,
		Name:            h.Name,
		Role:            h.Role,
		TotalXP:         h.TotalXP,
		Rank:            rank.Rank(h.CurrentRank),
		StreakDays:      h.StreakDays,
		LastStreakDate:  h.LastStreakDate,
		RankAssignedAt:  h.RankAssignedAt,
		AssessmentScore: h.AssessmentScore,
		Stats:           h.Stats,
		CreatedAt:       h.CreatedAt,
	}
}

// DailyQuest is a quest in today's batch.
type DailyQuest struct {
	rank.Quest
	Position    int        `json:"position"`
	Date        string     `json:"date"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func questFrom(q store.QuestRecord) DailyQuest {
	return DailyQuest{
		Quest: rank.Quest{
			ID:          q.ID,
			Rank:        rank.Rank(q.Rank),
			Title:       q.Title,
			Description: q.Description,
			Category:    rank.Category(q.Category),
			XPReward:    q.XPReward,
			Difficulty:  rank.Difficulty(q.Difficulty),
			Completed:   q.Completed,
		},
		Position:    q.Position,
		Date:        q.QuestDate,
		CompletedAt: q.CompletedAt,
	}
}

// Completion summarises one completed quest.
type Completion struct {
	Quest        DailyQuest `json:"quest"`
	XPAwarded    int        `json:"xp_awarded"`
	BoostPercent int        `json:"boost_percent"`
	TotalXP      int        `json:"total_xp"`
	RankBefore   rank.Rank  `json:"rank_before"`
	RankAfter    rank.Rank  `json:"rank_after"`
	RankChanged  bool       `json:"rank_changed"`
	DayComplete  bool       `json:"day_complete"`
	StreakDays   int        `json:"streak_days"`
	// Milestone is set when this completion lands the streak on a
	// celebrated length.
	Milestone int `json:"milestone,omitempty"`
}

// AssessmentOutcome is returned by SubmitAssessment.
type AssessmentOutcome struct {
	Result  assessment.Result `json:"result"`
	Profile Profile           `json:"profile"`
}

// Status is the full progress snapshot shown on dashboards.
type Status struct {
	Profile         Profile           `json:"profile"`
	EffectiveStreak int               `json:"effective_streak"`
	XP              rank.XPProgress   `json:"xp"`
	Days            rank.DaysProgress `json:"days"`
	NextRank        rank.Rank         `json:"next_rank,omitempty"`
	IsMaxRank       bool              `json:"is_max_rank"`
	BoostPercent    int               `json:"boost_percent"`
	NextMilestone   int               `json:"next_milestone"`
	QuestsDone      int               `json:"quests_done"`
	QuestsTotal     int               `json:"quests_total"`
}

// CategoryStat is one axis of the category radar.
type CategoryStat struct {
	Category  rank.Category `json:"category"`
	Name      string        `json:"name"`
	Completed int           `json:"completed"`
	Value     int           `json:"value"`
}

// Recorder receives domain counters. The HTTP server backs it with
// Prometheus.
type Recorder interface {
	QuestCompleted(category rank.Category)
	XPAwarded(xp int)
	RankChanged(to rank.Rank)
}

type nopRecorder struct{}

func (nopRecorder) QuestCompleted(rank.Category) {}
func (nopRecorder) XPAwarded(int)                {}
func (nopRecorder) RankChanged(rank.Rank)        {}
