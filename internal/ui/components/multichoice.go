package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/hunter-system/hunter/internal/ui/theme"
)

// MultiChoice is a single-select list. Moving with up/down (or k/j) and
// confirming with enter sets Chosen. Digit keys jump straight to an option.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
	// Chosen is -1 until the user confirms.
	Chosen int
}

// NewMultiChoice returns a selector with the cursor on start.
func NewMultiChoice(prompt string, options []string, start int) MultiChoice {
	if start < 0 || start >= len(options) {
		start = 0
	}
	return MultiChoice{Prompt: prompt, Options: options, Cursor: start, Chosen: -1}
}

// Done reports whether an option has been confirmed.
func (m MultiChoice) Done() bool { return m.Chosen >= 0 }

// Update handles navigation keys. It ignores input once an option is chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Done() {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		m.Chosen = m.Cursor
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(m.Options) {
			m.Cursor = int(s[0] - '1')
		}
	}
	return m, nil
}

// View renders the prompt and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")
	for i, opt := range m.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case i == m.Chosen:
			b.WriteString(theme.Done.Render("✓ " + line))
		case i == m.Cursor && !m.Done():
			b.WriteString(theme.Selected.Render("▸ " + line))
		default:
			b.WriteString(theme.Body.Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
