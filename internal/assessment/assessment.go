// Package assessment scores the onboarding questionnaire that grants a
// hunter's starting rank.
package assessment

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hunter-system/hunter/internal/rank"
)

const (
	MinOptionScore = 1
	MaxOptionScore = 5
)

// ErrIncomplete is returned by Evaluate when a question has no answer.
var ErrIncomplete = errors.New("assessment incomplete")

// Option is one scored choice for a question.
type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a single questionnaire item.
type Question struct {
	ID       int           `json:"id"`
	Category rank.Category `json:"category"`
	Text     string        `json:"text"`
	Options  []Option      `json:"options"`
}

// Answer records the score chosen for a question. Category is filled in
// from the questionnaire and may be left empty by callers.
type Answer struct {
	QuestionID int           `json:"question_id"`
	Score      int           `json:"score"`
	Category   rank.Category `json:"category,omitempty"`
}

// Result is the outcome of a completed assessment.
type Result struct {
	TotalScore int                   `json:"total_score"`
	MaxScore   int                   `json:"max_score"`
	Rank       rank.Rank             `json:"rank"`
	Stats      map[rank.Category]int `json:"stats"`
}

// RankScorer maps a total score to a rank.
type RankScorer interface {
	RankFromAssessmentScore(score int) rank.Rank
}

var byID map[int]Question

func init() {
	byID = make(map[int]Question, len(questionnaire))
	for _, q := range questionnaire {
		if _, dup := byID[q.ID]; dup {
			panic(fmt.Sprintf("duplicate assessment question %d", q.ID))
		}
		byID[q.ID] = q
	}
}

// Questions returns the questionnaire in presentation order.
func Questions() []Question {
	return slices.Clone(questionnaire)
}

// QuestionByID returns a question by ID.
func QuestionByID(id int) (Question, bool) {
	q, ok := byID[id]
	return q, ok
}

// MaxScore is the total for answering every question with the top option.
func MaxScore() int {
	return len(questionnaire) * MaxOptionScore
}

// Normalize drops answers to unknown questions, keeps the last answer per
// question, clamps scores to the option range and fills in categories. The
// result is ordered by question ID.
func Normalize(answers []Answer) []Answer {
	latest := make(map[int]Answer, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		a.Score = min(MaxOptionScore, max(MinOptionScore, a.Score))
		a.Category = q.Category
		latest[a.QuestionID] = a
	}
	out := make([]Answer, 0, len(latest))
	for _, a := range latest {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Answer) int { return a.QuestionID - b.QuestionID })
	return out
}

// Score sums the normalized answer scores.
func Score(answers []Answer) int {
	total := 0
	for _, a := range Normalize(answers) {
		total += a.Score
	}
	return total
}

// Stats returns a 0..100 rating per category: the average answer score
// scaled by 20. Categories without answers rate 0.
func Stats(answers []Answer) map[rank.Category]int {
	sums := make(map[rank.Category]int)
	counts := make(map[rank.Category]int)
	for _, a := range Normalize(answers) {
		sums[a.Category] += a.Score
		counts[a.Category]++
	}
	stats := make(map[rank.Category]int, len(rank.AllCategories()))
	for _, c := range rank.AllCategories() {
		if counts[c] == 0 {
			stats[c] = 0
			continue
		}
		avg := float64(sums[c]) / float64(counts[c])
		stats[c] = int(math.Round(avg * 20))
	}
	return stats
}

// Evaluate scores a complete set of answers and maps the total to a rank.
func Evaluate(scorer RankScorer, answers []Answer) (Result, error) {
	norm := Normalize(answers)
	if len(norm) < len(questionnaire) {
		return Result{}, fmt.Errorf("%w: %d of %d questions answered", ErrIncomplete, len(norm), len(questionnaire))
	}

	total := Score(norm)
	return Result{
		TotalScore: total,
		MaxScore:   MaxScore(),
		Rank:       scorer.RankFromAssessmentScore(total),
		Stats:      Stats(norm),
	}, nil
}

// AnswersFromScores builds answers for every question in order from a list
// of chosen scores.
func AnswersFromScores(scores []int) ([]Answer, error) {
	if len(scores) != len(questionnaire) {
		return nil, fmt.Errorf("%w: got %d scores, want %d", ErrIncomplete, len(scores), len(questionnaire))
	}
	answers := make([]Answer, len(scores))
	for i, s := range scores {
		answers[i] = Answer{QuestionID: questionnaire[i].ID, Score: s}
	}
	return answers, nil
}
