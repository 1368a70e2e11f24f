// Package assessment is the onboarding questionnaire screen.
package assessment

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	quiz "github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/router"
	"github.com/hunter-system/hunter/internal/ui/components"
	"github.com/hunter-system/hunter/internal/ui/layout"
	"github.com/hunter-system/hunter/internal/ui/theme"
)

// FinishedMsg is emitted once every question has an answer.
type FinishedMsg struct {
	Answers []quiz.Answer
}

// CancelledMsg is emitted when the hunter leaves before finishing.
type CancelledMsg struct{}

// Screen walks the questionnaire one question at a time.
type Screen struct {
	questions []quiz.Question
	index     int
	choice    components.MultiChoice
	answers   []quiz.Answer
}

var _ router.Screen = (*Screen)(nil)

// New returns a screen positioned on the first question.
func New() *Screen {
	s := &Screen{questions: quiz.Questions()}
	s.answers = make([]quiz.Answer, 0, len(s.questions))
	s.choice = s.choiceFor(0)
	return s
}

func (s *Screen) choiceFor(i int) components.MultiChoice {
	q := s.questions[i]
	opts := make([]string, len(q.Options))
	for j, o := range q.Options {
		opts[j] = o.Text
	}
	// Start on the middle option so no answer is implied.
	return components.NewMultiChoice(q.Text, opts, len(opts)/2)
}

func (s *Screen) Title() string { return "Assessment" }

func (s *Screen) Init() tea.Cmd { return nil }

// Answers returns the answers given so far.
func (s *Screen) Answers() []quiz.Answer { return s.answers }

// Finished reports whether every question is answered.
func (s *Screen) Finished() bool { return len(s.answers) == len(s.questions) }

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if s.Finished() {
		return s, nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc", "q":
			return s, func() tea.Msg { return CancelledMsg{} }
		case "backspace", "left", "h":
			s.back()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if !s.choice.Done() {
		return s, cmd
	}

	q := s.questions[s.index]
	s.answers = append(s.answers, quiz.Answer{
		QuestionID: q.ID,
		Score:      q.Options[s.choice.Chosen].Score,
		Category:   q.Category,
	})
	if s.Finished() {
		answers := s.answers
		return s, func() tea.Msg { return FinishedMsg{Answers: answers} }
	}
	s.index++
	s.choice = s.choiceFor(s.index)
	return s, cmd
}

// back reopens the previous question with its earlier answer selected.
func (s *Screen) back() {
	if s.index == 0 {
		return
	}
	s.index--
	prev := s.answers[len(s.answers)-1]
	s.answers = s.answers[:len(s.answers)-1]
	s.choice = s.choiceFor(s.index)
	for i, o := range s.questions[s.index].Options {
		if o.Score == prev.Score {
			s.choice.Cursor = i
		}
	}
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	q := s.questions[s.index]
	total := len(s.questions)

	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d of %d", s.index+1, total)))
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(rank.CategoryDisplayName(q.Category)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(len(s.answers))/float64(total), min(width-4, 60))
	bar.Caption = fmt.Sprintf("%d/%d", len(s.answers), total)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if s.Finished() {
		b.WriteString(theme.Done.Render("Assessment complete. The System is evaluating you..."))
	} else {
		b.WriteString(s.choice.View())
	}
	return theme.Card.Width(min(width, 80)).Render(b.String())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←", Description: "Back"},
		{Key: "Esc", Description: "Quit"},
	}
}
