package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

type handler struct {
	svc     *progression.Service
	briefer *briefing.Composer
	ping    func(ctx context.Context) error
	now     func() time.Time
	logger  *zap.Logger
}

// asOf reads the optional RFC3339 as_of query parameter.
func (h *handler) asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return h.now(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("as_of: %v", err))
		return time.Time{}, false
	}
	return t, true
}

// serviceError writes err with its mapped status. Unexpected errors are
// logged and hidden from the client.
func (h *handler) serviceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, code, "internal server error")
		return
	}
	fail(c, code, err.Error())
}

func (h *handler) health(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	success(c, gin.H{"status": "ok", "components": gin.H{"database": "up"}})
}

func (h *handler) ladder(c *gin.Context) {
	l := h.svc.Engine().Ladder()
	success(c, gin.H{
		"ranks":      l.Ranks(),
		"assessment": l.Assessment(),
		"milestones": rank.StreakMilestones(),
	})
}

type enrollRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handler) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	p, err := h.svc.Enroll(c.Request.Context(), req.Name, asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	created(c, p)
}

func (h *handler) profile(c *gin.Context) {
	p, err := h.svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, p)
}

func (h *handler) status(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	st, err := h.svc.Status(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, st)
}

// assessmentRequest accepts either explicit answers or one score per
// question in questionnaire order.
type assessmentRequest struct {
	Answers []assessment.Answer `json:"answers"`
	Scores  []int               `json:"scores"`
}

func (h *handler) questions(c *gin.Context) {
	success(c, gin.H{
		"questions": assessment.Questions(),
		"max_score": assessment.MaxScore(),
	})
}

func (h *handler) assess(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	answers := req.Answers
	if len(req.Scores) > 0 {
		var err error
		if answers, err = assessment.AnswersFromScores(req.Scores); err != nil {
			h.serviceError(c, err)
			return
		}
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	out, err := h.svc.SubmitAssessment(c.Request.Context(), c.Param("id"), answers, asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, out)
}

func (h *handler) quests(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	qs, err := h.svc.TodayQuests(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, qs)
}

func (h *handler) complete(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	done, err := h.svc.CompleteQuest(c.Request.Context(), c.Param("id"), c.Param("questID"), asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, done)
}

func (h *handler) stats(c *gin.Context) {
	stats, err := h.svc.CategoryStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, stats)
}

func (h *handler) history(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		fail(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	events, err := h.svc.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	out := make([]historyEntry, len(events))
	for i, e := range events {
		out[i] = historyEntry{
			ID:        e.ID,
			Kind:      e.Kind,
			XPDelta:   e.XPDelta,
			RankFrom:  e.RankFrom,
			RankTo:    e.RankTo,
			QuestID:   e.QuestID,
			Detail:    e.Detail,
			Timestamp: e.Timestamp,
		}
	}
	success(c, out)
}

type historyEntry struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	XPDelta   int       `json:"xp_delta"`
	RankFrom  string    `json:"rank_from,omitempty"`
	RankTo    string    `json:"rank_to,omitempty"`
	QuestID   string    `json:"quest_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *handler) brief(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	id := c.Param("id")
	qs, err := h.svc.TodayQuests(c.Request.Context(), id, asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	st, err := h.svc.Status(c.Request.Context(), id, asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, h.briefer.Compose(c.Request.Context(), *st, qs, asOf))
}

type resetRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

func (h *handler) reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	p, err := h.svc.Reset(c.Request.Context(), req.ActorID, c.Param("id"), asOf)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	success(c, p)
}
