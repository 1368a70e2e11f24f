package progression

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/store"
)

var day1 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type countingRecorder struct {
	mu       sync.Mutex
	quests   map[rank.Category]int
	xp       int
	promoted []rank.Rank
}

func (c *countingRecorder) QuestCompleted(cat rank.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quests == nil {
		c.quests = make(map[rank.Category]int)
	}
	c.quests[cat]++
}

func (c *countingRecorder) XPAwarded(xp int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.xp += xp
}

func (c *countingRecorder) RankChanged(to rank.Rank) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promoted = append(c.promoted, to)
}

func newTestService(t *testing.T) (*Service, *store.Store, *countingRecorder) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "hunter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	rec := &countingRecorder{}
	return NewService(rank.Default(), st, WithRecorder(rec)), st, rec
}

func enroll(t *testing.T, svc *Service, name string) *Profile {
	t.Helper()
	p, err := svc.Enroll(context.Background(), name, day1)
	require.NoError(t, err)
	return p
}

func completeAll(t *testing.T, svc *Service, id string, asOf time.Time) *Completion {
	t.Helper()
	ctx := context.Background()
	quests, err := svc.TodayQuests(ctx, id, asOf)
	require.NoError(t, err)

	var last *Completion
	for _, q := range quests {
		last, err = svc.CompleteQuest(ctx, id, q.ID, asOf)
		require.NoError(t, err)
	}
	return last
}

func uniformScores(score int) []int {
	scores := make([]int, len(assessment.Questions()))
	for i := range scores {
		scores[i] = score
	}
	return scores
}

func TestEnroll(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p := enroll(t, svc, "  Jinwoo ")
	assert.Equal(t, "Jinwoo", p.Name)
	assert.Equal(t, rank.E, p.Rank)
	assert.Equal(t, 0, p.TotalXP)
	assert.Equal(t, RoleHunter, p.Role)
	assert.True(t, p.RankAssignedAt.Equal(day1))

	_, err := svc.Enroll(ctx, "Jinwoo", day1)
	assert.ErrorIs(t, err, ErrDuplicateHunter)

	_, err = svc.Enroll(ctx, "   ", day1)
	assert.ErrorIs(t, err, ErrInvalidName)

	byName, err := svc.Resolve(ctx, "Jinwoo")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	_, err = svc.Resolve(ctx, "nobody")
	assert.ErrorIs(t, err, ErrHunterNotFound)
}

func TestTodayQuests_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	first, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	require.Len(t, first, len(rank.AllCategories()))

	for i, q := range first {
		assert.Equal(t, i+1, q.Position)
		assert.Equal(t, rank.AllCategories()[i], q.Category)
		assert.Equal(t, rank.E, q.Rank)
		assert.False(t, q.Completed)
	}

	later := day1.Add(10 * time.Hour)
	second, err := svc.TodayQuests(ctx, p.ID, later)
	require.NoError(t, err)
	assert.Equal(t, questIDs(first), questIDs(second))

	tomorrow, err := svc.TodayQuests(ctx, p.ID, day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotEqual(t, questIDs(first), questIDs(tomorrow))
}

func TestTodayQuests_ConcurrentCallersShareBatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	p := enroll(t, svc, "a")

	const n = 8
	results := make([][]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qs, err := svc.TodayQuests(context.Background(), p.ID, day1)
			errs[i] = err
			results[i] = questIDs(qs)
		}()
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], len(rank.AllCategories()))
		assert.Equal(t, results[0], results[i])
	}
}

func TestTodayQuests_UnknownHunter(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.TodayQuests(context.Background(), "missing", day1)
	assert.ErrorIs(t, err, ErrHunterNotFound)
}

func TestCompleteQuest_Once(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	mind := quests[0]

	c, err := svc.CompleteQuest(ctx, p.ID, mind.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, mind.XPReward, c.XPAwarded)
	assert.Equal(t, mind.XPReward, c.TotalXP)
	assert.True(t, c.Quest.Completed)
	assert.False(t, c.DayComplete)

	_, err = svc.CompleteQuest(ctx, p.ID, mind.ID, day1)
	assert.ErrorIs(t, err, ErrQuestAlreadyCompleted)

	prof, err := svc.Profile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, mind.XPReward, prof.TotalXP, "XP awarded once")
	assert.Equal(t, 1, rec.quests[rank.CategoryMind])
	assert.Equal(t, mind.XPReward, rec.xp)
}

func TestCompleteQuest_ConcurrentAwardsOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	body := quests[2]

	const n = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CompleteQuest(ctx, p.ID, body.ID, day1)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrQuestAlreadyCompleted)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	prof, err := svc.Profile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, body.XPReward, prof.TotalXP)
}

func TestCompleteQuest_Expired(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)

	_, err = svc.CompleteQuest(ctx, p.ID, quests[0].ID, day1.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrQuestExpired)
}

func TestCompleteQuest_OtherHuntersQuest(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	a := enroll(t, svc, "a")
	b := enroll(t, svc, "b")

	quests, err := svc.TodayQuests(ctx, a.ID, day1)
	require.NoError(t, err)

	_, err = svc.CompleteQuest(ctx, b.ID, quests[0].ID, day1)
	assert.ErrorIs(t, err, ErrQuestNotFound)

	_, err = svc.CompleteQuest(ctx, a.ID, "no-such-quest", day1)
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestStreak_ExtendAndReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	c := completeAll(t, svc, p.ID, day1)
	assert.True(t, c.DayComplete)
	assert.Equal(t, 1, c.StreakDays)

	day2 := day1.AddDate(0, 0, 1)
	c = completeAll(t, svc, p.ID, day2)
	assert.Equal(t, 2, c.StreakDays, "consecutive day extends the streak")

	st, err := svc.Status(ctx, p.ID, day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, st.EffectiveStreak, "streak alive the day after")

	day4 := day1.AddDate(0, 0, 3)
	st, err = svc.Status(ctx, p.ID, day4)
	require.NoError(t, err)
	assert.Equal(t, 0, st.EffectiveStreak, "missed day lapses the streak")

	c = completeAll(t, svc, p.ID, day4)
	assert.Equal(t, 1, c.StreakDays, "missed day resets to 1")
}

func TestStreak_BoostApplied(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	h, err := st.HunterRepo().Get(ctx, p.ID)
	require.NoError(t, err)
	h.TotalXP = 6000
	h.CurrentRank = string(rank.S)
	h.StreakDays = 70
	h.LastStreakDate = dayKey(day1.AddDate(0, 0, -1))
	require.NoError(t, st.HunterRepo().Update(ctx, h))

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	q := quests[0]
	require.Equal(t, rank.S, q.Rank)

	c, err := svc.CompleteQuest(ctx, p.ID, q.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, rank.MaxStreakBoostPercent, c.BoostPercent)
	assert.Equal(t, rank.BoostedReward(q.XPReward, 70), c.XPAwarded)
	assert.Greater(t, c.XPAwarded, q.XPReward)
}

func TestCompleteQuest_RankUp(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	h, err := st.HunterRepo().Get(ctx, p.ID)
	require.NoError(t, err)
	h.TotalXP = 295
	require.NoError(t, st.HunterRepo().Update(ctx, h))

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)

	asOf := day1.Add(3 * time.Hour)
	c, err := svc.CompleteQuest(ctx, p.ID, quests[0].ID, asOf)
	require.NoError(t, err)
	assert.True(t, c.RankChanged)
	assert.Equal(t, rank.E, c.RankBefore)
	assert.Equal(t, rank.D, c.RankAfter)
	assert.Equal(t, []rank.Rank{rank.D}, rec.promoted)

	prof, err := svc.Profile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, rank.D, prof.Rank)
	assert.True(t, prof.RankAssignedAt.Equal(asOf))

	history, err := svc.History(ctx, p.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, EventRankChanged, history[0].Kind)
}

func TestSubmitAssessment_MaxScore(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	answers, err := assessment.AnswersFromScores(uniformScores(assessment.MaxOptionScore))
	require.NoError(t, err)

	asOf := day1.Add(time.Hour)
	out, err := svc.SubmitAssessment(ctx, p.ID, answers, asOf)
	require.NoError(t, err)
	assert.Equal(t, assessment.MaxScore(), out.Result.TotalScore)
	assert.Equal(t, rank.D, out.Result.Rank)
	assert.Equal(t, rank.D, out.Profile.Rank)
	assert.Equal(t, 300, out.Profile.TotalXP)
	assert.True(t, out.Profile.RankAssignedAt.Equal(asOf))
	require.NotNil(t, out.Profile.AssessmentScore)
	assert.Equal(t, 150, *out.Profile.AssessmentScore)
	assert.Equal(t, 100, out.Profile.Stats[string(rank.CategoryMind)])

	_, err = svc.SubmitAssessment(ctx, p.ID, answers, asOf)
	assert.ErrorIs(t, err, ErrAlreadyAssessed)
}

func TestSubmitAssessment_LowScoreStaysAtE(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	answers, err := assessment.AnswersFromScores(uniformScores(assessment.MinOptionScore))
	require.NoError(t, err)

	out, err := svc.SubmitAssessment(ctx, p.ID, answers, day1)
	require.NoError(t, err)
	assert.Equal(t, rank.E, out.Profile.Rank)
	assert.Equal(t, 0, out.Profile.TotalXP)

	_, err = svc.SubmitAssessment(ctx, p.ID, answers, day1)
	assert.ErrorIs(t, err, ErrAlreadyAssessed, "score recorded even without XP")
}

func TestSubmitAssessment_RejectedAfterXP(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	_, err = svc.CompleteQuest(ctx, p.ID, quests[0].ID, day1)
	require.NoError(t, err)

	answers, err := assessment.AnswersFromScores(uniformScores(3))
	require.NoError(t, err)
	_, err = svc.SubmitAssessment(ctx, p.ID, answers, day1)
	assert.ErrorIs(t, err, ErrAlreadyAssessed)
}

func TestSubmitAssessment_Incomplete(t *testing.T) {
	svc, _, _ := newTestService(t)
	p := enroll(t, svc, "a")

	_, err := svc.SubmitAssessment(context.Background(), p.ID, []assessment.Answer{{QuestionID: 1, Score: 5}}, day1)
	assert.ErrorIs(t, err, assessment.ErrIncomplete)
}

func TestStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	st, err := svc.Status(ctx, p.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, rank.D, st.NextRank)
	assert.False(t, st.IsMaxRank)
	assert.Equal(t, 0, st.QuestsDone)
	assert.Equal(t, len(rank.AllCategories()), st.QuestsTotal)
	assert.Equal(t, 300, st.XP.Max)
	assert.Equal(t, 7, st.Days.DaysRequired)
	assert.Equal(t, 7, st.NextMilestone)

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	_, err = svc.CompleteQuest(ctx, p.ID, quests[1].ID, day1)
	require.NoError(t, err)

	st, err = svc.Status(ctx, p.ID, day1.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, st.Days.DaysCompleted)
	assert.Equal(t, quests[1].XPReward, st.XP.Current)

	st, err = svc.Status(ctx, p.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.QuestsDone)
}

func TestCategoryStats(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p := enroll(t, svc, "a")

	quests, err := svc.TodayQuests(ctx, p.ID, day1)
	require.NoError(t, err)
	_, err = svc.CompleteQuest(ctx, p.ID, quests[0].ID, day1)
	require.NoError(t, err)

	stats, err := svc.CategoryStats(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stats, len(rank.AllCategories()))
	assert.Equal(t, rank.CategoryMind, stats[0].Category)
	assert.Equal(t, 1, stats[0].Completed)
	assert.Equal(t, 3, stats[0].Value)
	for _, s := range stats[1:] {
		assert.Equal(t, 0, s.Value)
	}
}

func TestReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	target := enroll(t, svc, "target")
	actor := enroll(t, svc, "actor")

	before, err := svc.TodayQuests(ctx, target.ID, day1)
	require.NoError(t, err)
	completeAll(t, svc, target.ID, day1)

	_, err = svc.Reset(ctx, actor.ID, target.ID, day1)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Reset(ctx, target.ID, target.ID, day1)
	assert.ErrorIs(t, err, ErrForbidden, "resetting yourself still needs the admin role")

	_, err = svc.SetRole(ctx, actor.ID, RoleAdmin)
	require.NoError(t, err)

	p, err := svc.Reset(ctx, actor.ID, target.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalXP)
	assert.Equal(t, 0, p.StreakDays)
	assert.Equal(t, rank.E, p.Rank)

	after, err := svc.TodayQuests(ctx, target.ID, day1)
	require.NoError(t, err)
	assert.NotEqual(t, questIDs(before), questIDs(after), "today's batch is regenerated")

	history, err := svc.History(ctx, target.ID, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, EventProgressReset, history[0].Kind)
}

func TestSetRole_Invalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	p := enroll(t, svc, "a")

	_, err := svc.SetRole(context.Background(), p.ID, "overlord")
	assert.True(t, errors.Is(err, ErrInvalidRole))
}

func questIDs(qs []DailyQuest) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
