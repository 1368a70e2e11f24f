// Package layout frames screen content with a header bar and a footer of
// key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hunter-system/hunter/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is a key and what it does.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall reports whether the terminal cannot fit a frame.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// MinSizeMessage asks the user to enlarge the terminal.
func MinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small (%dx%d).\nResize to at least %dx%d.", width, height, MinWidth, MinHeight))
}

// Header renders the top bar: the app name on the left, title in the middle
// and status on the right.
func Header(title, status string, width int) string {
	left := theme.Title.Render("HUNTER SYSTEM")
	center := theme.Body.Render(title)
	inner := max(width-4, 0)

	gapL := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	gapR := max(inner-lipgloss.Width(left)-gapL-lipgloss.Width(center)-lipgloss.Width(status), 1)

	line := left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + status
	return theme.Bar.Width(width).Padding(0, 1).Render(line)
}

// Footer renders key hints.
func Footer(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Subtitle.Render(h.Description)
	}
	return theme.Bar.Width(width).Padding(0, 1).Render(strings.Join(parts, "   "))
}

// Frame stacks header, content and footer, padding content to fill height.
func Frame(header, content, footer string, width, height int) string {
	body := ContentHeight(header, footer, height)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}

// ContentHeight is the height left for content between a header and footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
