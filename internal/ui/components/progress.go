package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hunter-system/hunter/internal/ui/theme"
)

// ProgressBar renders a fixed-width horizontal bar.
type ProgressBar struct {
	Label string
	// Percent is in [0, 1]; values outside are clamped.
	Percent float64
	// Caption replaces the default "NN%" suffix when set.
	Caption string
	Width   int
	Fill    color.Color
}

// NewProgressBar returns a bar using the secondary colour.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width, Fill: theme.Secondary}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	caption := p.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(clamp01(p.Percent)*100))
	}
	caption = "  " + caption

	barWidth := max(p.Width-lipgloss.Width(b.String())-lipgloss.Width(caption), 4)
	filled := int(float64(barWidth) * clamp01(p.Percent))

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Subtitle.Render(caption))
	return b.String()
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
