// Package app hosts the Bubble Tea programs: the full quest board and the
// standalone assessment.
package app

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	quiz "github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/router"
	"github.com/hunter-system/hunter/internal/screens/assessment"
	"github.com/hunter-system/hunter/internal/screens/quests"
	"github.com/hunter-system/hunter/internal/ui/layout"
)

// ErrCancelled is returned when the user quits the assessment early.
var ErrCancelled = errors.New("assessment cancelled")

// Deps wires the interactive app to the domain.
type Deps struct {
	Service  *progression.Service
	Briefer  quests.Briefer
	HunterID string
	Now      func() time.Time
}

type assessedMsg struct {
	outcome *progression.AssessmentOutcome
	err     error
}

// Model is the root model: a screen router inside a header and footer.
type Model struct {
	router *router.Router
	width  int
	height int

	// onFinish handles a completed assessment. Nil quits the program.
	onFinish func(answers []quiz.Answer) tea.Cmd
	// board builds the quest board shown after assessment.
	board func() router.Screen

	answers   []quiz.Answer
	cancelled bool
	err       error
}

func newModel(initial router.Screen) *Model {
	return &Model{router: router.New(initial)}
}

func (m *Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = m.answers == nil
			return m, tea.Quit
		}

	case assessment.CancelledMsg:
		m.cancelled = true
		return m, tea.Quit

	case assessment.FinishedMsg:
		m.answers = msg.Answers
		if m.onFinish == nil {
			return m, tea.Quit
		}
		return m, m.onFinish(msg.Answers)

	case assessedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		return m, router.Replace(m.board())
	}

	return m, m.router.Update(msg)
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

func (m *Model) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.TooSmall(m.width, m.height) {
		return layout.MinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	status := ""
	if s, ok := active.(interface{ StatusLine() string }); ok {
		status = s.StatusLine()
	}
	header := layout.Header(active.Title(), status, m.width)

	hints := m.router.Hints()
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	footer := layout.Footer(hints, m.width)

	content := active.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.Frame(header, content, footer, m.width, m.height)
}

// RunAssessment shows the questionnaire and returns the answers. It returns
// ErrCancelled if the user quits first.
func RunAssessment(ctx context.Context) ([]quiz.Answer, error) {
	m := newModel(assessment.New())
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return nil, err
	}
	if m.cancelled || m.answers == nil {
		return nil, ErrCancelled
	}
	return m.answers, nil
}

// Run starts the interactive quest board. Hunters who have not been assessed
// take the assessment first.
func Run(ctx context.Context, deps Deps) error {
	m, err := newAppModel(ctx, deps)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	return nil
}

func newAppModel(ctx context.Context, deps Deps) (*Model, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	profile, err := deps.Service.Profile(ctx, deps.HunterID)
	if err != nil {
		return nil, err
	}

	board := func() router.Screen {
		return quests.New(ctx, deps.Service, deps.Briefer, deps.Service.Engine().Ladder(), deps.HunterID, deps.Now)
	}
	if profile.AssessmentScore != nil || profile.TotalXP > 0 {
		m := newModel(board())
		m.board = board
		return m, nil
	}

	m := newModel(assessment.New())
	m.board = board
	m.onFinish = func(answers []quiz.Answer) tea.Cmd {
		return func() tea.Msg {
			out, err := deps.Service.SubmitAssessment(ctx, deps.HunterID, answers, deps.Now())
			return assessedMsg{outcome: out, err: err}
		}
	}
	return m, nil
}
