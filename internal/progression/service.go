// Package progression applies the rank engine to persisted hunters: daily
// quest batches, XP awards, streaks and rank changes.
package progression

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/store"
)

// categoryTarget is the completed-quest count that fills one radar axis.
const categoryTarget = 30

// Service coordinates hunters, quests and events.
type Service struct {
	engine   *rank.Engine
	store    *store.Store
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates a Service over engine and st.
func NewService(engine *rank.Engine, st *store.Store, opts ...Option) *Service {
	s := &Service{
		engine:   engine,
		store:    st,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the rank engine the service uses.
func (s *Service) Engine() *rank.Engine { return s.engine }

// Enroll creates a hunter at the lowest rank.
func (s *Service) Enroll(ctx context.Context, name string, asOf time.Time) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	h := &store.Hunter{
		ID:             uuid.NewString(),
		Name:           name,
		Role:           RoleHunter,
		CurrentRank:    string(s.engine.Ladder().Lowest()),
		RankAssignedAt: asOf,
		CreatedAt:      asOf,
	}

	err := s.store.InTx(ctx, func(r store.Repos) error {
		if err := r.Hunters.Create(ctx, h); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("%w: %q", ErrDuplicateHunter, name)
			}
			return err
		}
		return r.Events.AppendProgress(ctx, store.ProgressEventData{
			HunterID:  h.ID,
			Kind:      EventEnrolled,
			RankTo:    h.CurrentRank,
			Timestamp: asOf,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("hunter enrolled", zap.String("hunter_id", h.ID), zap.String("name", h.Name))
	p := profileFrom(h)
	return &p, nil
}

// Profile returns a hunter's profile.
func (s *Service) Profile(ctx context.Context, id string) (*Profile, error) {
	h, err := getHunter(ctx, s.store.HunterRepo(), id)
	if err != nil {
		return nil, err
	}
	p := profileFrom(h)
	return &p, nil
}

// Resolve finds a hunter by ID, falling back to name.
func (s *Service) Resolve(ctx context.Context, idOrName string) (*Profile, error) {
	repo := s.store.HunterRepo()
	h, err := repo.Get(ctx, idOrName)
	if errors.Is(err, store.ErrNotFound) {
		h, err = repo.GetByName(ctx, idOrName)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrHunterNotFound, idOrName)
	}
	if err != nil {
		return nil, err
	}
	p := profileFrom(h)
	return &p, nil
}

// SubmitAssessment scores the questionnaire and grants the starting rank.
// A hunter may be assessed once, before earning any XP.
func (s *Service) SubmitAssessment(ctx context.Context, id string, answers []assessment.Answer, asOf time.Time) (*AssessmentOutcome, error) {
	result, err := assessment.Evaluate(s.engine, answers)
	if err != nil {
		return nil, err
	}

	ladder := s.engine.Ladder()
	var (
		out     AssessmentOutcome
		changed bool
	)
	err = s.store.InTx(ctx, func(r store.Repos) error {
		h, err := getHunter(ctx, r.Hunters, id)
		if err != nil {
			return err
		}
		if h.AssessmentScore != nil || h.TotalXP > 0 {
			return fmt.Errorf("%w: %s", ErrAlreadyAssessed, h.Name)
		}

		score := result.TotalScore
		h.AssessmentScore = &score
		h.Stats = make(map[string]int, len(result.Stats))
		for c, v := range result.Stats {
			h.Stats[string(c)] = v
		}

		before := rank.Rank(h.CurrentRank)
		if ladder.Compare(result.Rank, s.engine.RankFromXP(h.TotalXP)) > 0 {
			h.TotalXP = ladder.Config(result.Rank).MinXP
		}
		after := s.engine.RankFromXP(h.TotalXP)
		h.CurrentRank = string(after)
		changed = after != before
		if changed {
			h.RankAssignedAt = asOf
		}

		if err := r.Hunters.Update(ctx, h); err != nil {
			return err
		}
		if err := r.Events.AppendProgress(ctx, store.ProgressEventData{
			HunterID:  h.ID,
			Kind:      EventAssessed,
			XPDelta:   h.TotalXP,
			RankFrom:  string(before),
			RankTo:    string(after),
			Detail:    fmt.Sprintf("score %d/%d", result.TotalScore, result.MaxScore),
			Timestamp: asOf,
		}); err != nil {
			return err
		}
		if changed {
			if err := r.Events.AppendProgress(ctx, store.ProgressEventData{
				HunterID:  h.ID,
				Kind:      EventRankChanged,
				RankFrom:  string(before),
				RankTo:    string(after),
				Timestamp: asOf,
			}); err != nil {
				return err
			}
		}

		out = AssessmentOutcome{Result: result, Profile: profileFrom(h)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Profile.TotalXP > 0 {
		s.recorder.XPAwarded(out.Profile.TotalXP)
	}
	if changed {
		s.recorder.RankChanged(out.Profile.Rank)
	}
	s.logger.Info("assessment submitted",
		zap.String("hunter_id", id),
		zap.Int("score", result.TotalScore),
		zap.String("rank", string(out.Profile.Rank)),
	)
	return &out, nil
}

// TodayQuests returns the hunter's batch for asOf's day, generating it on
// first access. Concurrent first calls all observe the one stored batch.
func (s *Service) TodayQuests(ctx context.Context, id string, asOf time.Time) ([]DailyQuest, error) {
	hunters := s.store.HunterRepo()
	quests := s.store.QuestRepo()

	h, err := getHunter(ctx, hunters, id)
	if err != nil {
		return nil, err
	}
	day := dayKey(asOf)

	existing, err := quests.ForDay(ctx, h.ID, day)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return toDailyQuests(existing), nil
	}

	generated := s.engine.GenerateDailyQuests(s.engine.Ladder().Parse(h.CurrentRank), asOf)
	batch := make([]store.QuestRecord, len(generated))
	for i, q := range generated {
		batch[i] = store.QuestRecord{
			ID:          q.ID,
			HunterID:    h.ID,
			QuestDate:   day,
			Position:    i + 1,
			Rank:        string(q.Rank),
			Category:    string(q.Category),
			Title:       q.Title,
			Description: q.Description,
			XPReward:    q.XPReward,
			Difficulty:  string(q.Difficulty),
			CreatedAt:   asOf,
		}
	}

	inserted, err := quests.InsertBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	if inserted {
		s.logger.Debug("daily quests generated",
			zap.String("hunter_id", h.ID),
			zap.String("date", day),
			zap.String("rank", h.CurrentRank),
		)
	}

	stored, err := quests.ForDay(ctx, h.ID, day)
	if err != nil {
		return nil, err
	}
	return toDailyQuests(stored), nil
}

// CompleteQuest completes one of today's quests, awarding boosted XP and
// extending the streak when the whole batch is done.
func (s *Service) CompleteQuest(ctx context.Context, id, questID string, asOf time.Time) (*Completion, error) {
	today := dayKey(asOf)
	yesterday := dayKey(asOf.AddDate(0, 0, -1))
	var c Completion

	err := s.store.InTx(ctx, func(r store.Repos) error {
		h, err := getHunter(ctx, r.Hunters, id)
		if err != nil {
			return err
		}

		q, err := r.Quests.Get(ctx, questID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && q.HunterID != h.ID) {
			return fmt.Errorf("%w: %q", ErrQuestNotFound, questID)
		}
		if err != nil {
			return err
		}
		if q.QuestDate != today {
			return fmt.Errorf("%w: %s", ErrQuestExpired, q.QuestDate)
		}

		ok, err := r.Quests.MarkCompleted(ctx, q.ID, asOf)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrQuestAlreadyCompleted, q.Title)
		}
		completedAt := asOf
		q.Completed = true
		q.CompletedAt = &completedAt

		streak := effectiveStreak(h, asOf)
		award := rank.BoostedReward(q.XPReward, streak)
		before := rank.Rank(h.CurrentRank)
		h.TotalXP += award
		after := s.engine.RankFromXP(h.TotalXP)
		h.CurrentRank = string(after)
		if after != before {
			h.RankAssignedAt = asOf
		}

		if h.QuestsCompletedOn != today {
			h.QuestsCompleted = 0
			h.QuestsCompletedOn = today
		}
		h.QuestsCompleted++

		batch, err := r.Quests.ForDay(ctx, h.ID, today)
		if err != nil {
			return err
		}
		dayComplete := len(batch) > 0 && !slices.ContainsFunc(batch, func(b store.QuestRecord) bool {
			return !b.Completed
		})

		streakChanged := false
		if dayComplete && h.LastStreakDate != today {
			if h.LastStreakDate == yesterday {
				h.StreakDays++
			} else {
				h.StreakDays = 1
			}
			h.LastStreakDate = today
			streakChanged = true
		}

		if err := r.Hunters.Update(ctx, h); err != nil {
			return err
		}

		events := []store.ProgressEventData{{
			HunterID:  h.ID,
			Kind:      EventQuestCompleted,
			XPDelta:   award,
			RankFrom:  string(before),
			RankTo:    string(after),
			QuestID:   q.ID,
			Detail:    q.Title,
			Timestamp: asOf,
		}}
		if after != before {
			events = append(events, store.ProgressEventData{
				HunterID:  h.ID,
				Kind:      EventRankChanged,
				RankFrom:  string(before),
				RankTo:    string(after),
				Timestamp: asOf,
			})
		}
		if streakChanged {
			events = append(events, store.ProgressEventData{
				HunterID:  h.ID,
				Kind:      EventStreakUpdated,
				Detail:    fmt.Sprintf("%d days", h.StreakDays),
				Timestamp: asOf,
			})
		}
		for _, e := range events {
			if err := r.Events.AppendProgress(ctx, e); err != nil {
				return err
			}
		}

		c = Completion{
			Quest:        questFrom(*q),
			XPAwarded:    award,
			BoostPercent: rank.StreakBoostPercent(streak),
			TotalXP:      h.TotalXP,
			RankBefore:   before,
			RankAfter:    after,
			RankChanged:  after != before,
			DayComplete:  dayComplete,
			StreakDays:   h.StreakDays,
		}
		if streakChanged && slices.Contains(rank.StreakMilestones(), h.StreakDays) {
			c.Milestone = h.StreakDays
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.QuestCompleted(c.Quest.Category)
	s.recorder.XPAwarded(c.XPAwarded)
	if c.RankChanged {
		s.recorder.RankChanged(c.RankAfter)
		s.logger.Info("rank changed",
			zap.String("hunter_id", id),
			zap.String("from", string(c.RankBefore)),
			zap.String("to", string(c.RankAfter)),
		)
	}
	s.logger.Info("quest completed",
		zap.String("hunter_id", id),
		zap.String("quest_id", questID),
		zap.Int("xp", c.XPAwarded),
		zap.Bool("day_complete", c.DayComplete),
	)
	return &c, nil
}

// Status returns the hunter's progress snapshot as of asOf.
func (s *Service) Status(ctx context.Context, id string, asOf time.Time) (*Status, error) {
	h, err := getHunter(ctx, s.store.HunterRepo(), id)
	if err != nil {
		return nil, err
	}
	batch, err := s.store.QuestRepo().ForDay(ctx, h.ID, dayKey(asOf))
	if err != nil {
		return nil, err
	}

	r := s.engine.Ladder().Parse(h.CurrentRank)
	streak := effectiveStreak(h, asOf)
	st := &Status{
		Profile:         profileFrom(h),
		EffectiveStreak: streak,
		XP:              s.engine.XPProgress(h.TotalXP, r),
		Days:            s.engine.DaysProgress(h.RankAssignedAt, streak, r, asOf),
		IsMaxRank:       s.engine.IsMaxRank(r),
		BoostPercent:    rank.StreakBoostPercent(streak),
		NextMilestone:   rank.NextStreakMilestone(streak),
		QuestsTotal:     len(rank.AllCategories()),
	}
	if next, ok := s.engine.NextRank(r); ok {
		st.NextRank = next
	}
	if len(batch) > 0 {
		st.QuestsTotal = len(batch)
		for _, q := range batch {
			if q.Completed {
				st.QuestsDone++
			}
		}
	}
	return st, nil
}

// CategoryStats returns the category radar for a hunter in category order.
func (s *Service) CategoryStats(ctx context.Context, id string) ([]CategoryStat, error) {
	h, err := getHunter(ctx, s.store.HunterRepo(), id)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.QuestRepo().CompletedByCategory(ctx, h.ID)
	if err != nil {
		return nil, err
	}

	cats := rank.AllCategories()
	out := make([]CategoryStat, 0, len(cats))
	for _, c := range cats {
		n := counts[string(c)]
		out = append(out, CategoryStat{
			Category:  c,
			Name:      rank.CategoryDisplayName(c),
			Completed: n,
			Value:     min(n*100/categoryTarget, 100),
		})
	}
	return out, nil
}

// History returns the hunter's most recent progress events.
func (s *Service) History(ctx context.Context, id string, limit int) ([]store.ProgressEventRecord, error) {
	h, err := getHunter(ctx, s.store.HunterRepo(), id)
	if err != nil {
		return nil, err
	}
	return s.store.EventRepo().QueryProgress(ctx, h.ID, store.QueryOpts{Limit: limit})
}

// Reset returns target to the lowest rank with no XP or streak and clears
// today's batch. The actor must hold the admin role. The assessment score
// is kept, so a reset hunter cannot be assessed again.
func (s *Service) Reset(ctx context.Context, actorID, targetID string, asOf time.Time) (*Profile, error) {
	var out Profile
	err := s.store.InTx(ctx, func(r store.Repos) error {
		actor, err := getHunter(ctx, r.Hunters, actorID)
		if err != nil {
			return err
		}
		if actor.Role != RoleAdmin {
			return fmt.Errorf("%w: %s cannot reset progress", ErrForbidden, actor.Name)
		}

		h, err := getHunter(ctx, r.Hunters, targetID)
		if err != nil {
			return err
		}
		before := h.CurrentRank
		xp := h.TotalXP

		h.TotalXP = 0
		h.StreakDays = 0
		h.LastStreakDate = ""
		h.CurrentRank = string(s.engine.Ladder().Lowest())
		h.RankAssignedAt = asOf
		h.QuestsCompleted = 0
		h.QuestsCompletedOn = ""

		if err := r.Hunters.Update(ctx, h); err != nil {
			return err
		}
		if err := r.Quests.DeleteDay(ctx, h.ID, dayKey(asOf)); err != nil {
			return err
		}
		if err := r.Events.AppendProgress(ctx, store.ProgressEventData{
			HunterID:  h.ID,
			Kind:      EventProgressReset,
			XPDelta:   -xp,
			RankFrom:  before,
			RankTo:    h.CurrentRank,
			Detail:    "reset by " + actor.Name,
			Timestamp: asOf,
		}); err != nil {
			return err
		}
		out = profileFrom(h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("progress reset", zap.String("actor_id", actorID), zap.String("hunter_id", targetID))
	return &out, nil
}

// SetRole changes a hunter's role.
func (s *Service) SetRole(ctx context.Context, id, role string) (*Profile, error) {
	if role != RoleHunter && role != RoleAdmin {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	var out Profile
	err := s.store.InTx(ctx, func(r store.Repos) error {
		h, err := getHunter(ctx, r.Hunters, id)
		if err != nil {
			return err
		}
		prev := h.Role
		h.Role = role
		if err := r.Hunters.Update(ctx, h); err != nil {
			return err
		}
		if err := r.Events.AppendProgress(ctx, store.ProgressEventData{
			HunterID: h.ID,
			Kind:     EventRoleChanged,
			Detail:   prev + " -> " + role,
		}); err != nil {
			return err
		}
		out = profileFrom(h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func getHunter(ctx context.Context, repo store.HunterRepo, id string) (*store.Hunter, error) {
	h, err := repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrHunterNotFound, id)
	}
	return h, err
}

// effectiveStreak is the streak still alive at asOf. A streak whose last
// full day is before yesterday has lapsed.
func effectiveStreak(h *store.Hunter, asOf time.Time) int {
	switch h.LastStreakDate {
	case dayKey(asOf), dayKey(asOf.AddDate(0, 0, -1)):
		return h.StreakDays
	default:
		return 0
	}
}

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

func toDailyQuests(records []store.QuestRecord) []DailyQuest {
	out := make([]DailyQuest, len(records))
	for i, q := range records {
		out[i] = questFrom(q)
	}
	return out
}
