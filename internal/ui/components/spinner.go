package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hunter-system/hunter/internal/ui/theme"
)

// Spinner is a labelled loading indicator.
type Spinner struct {
	Label string
	model spinner.Model
}

// NewSpinner returns a spinner in the primary colour.
func NewSpinner(label string) Spinner {
	return Spinner{
		Label: label,
		model: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

// Init starts the animation.
func (s Spinner) Init() tea.Cmd {
	return s.model.Tick
}

// Update advances the animation on its own tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the current frame and label.
func (s Spinner) View() string {
	return s.model.View() + " " + theme.Subtitle.Render(s.Label)
}
