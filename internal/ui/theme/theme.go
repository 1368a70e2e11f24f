// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/hunter-system/hunter/internal/rank"
)

// Palette. Dark dungeon blues with a system-window cyan.
var (
	Primary   = lipgloss.Color("#38BDF8") // System cyan
	Secondary = lipgloss.Color("#6366F1") // Indigo
	Accent    = lipgloss.Color("#FACC15") // Gold
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#64748B")
	BgCard    = lipgloss.Color("#111827")
	Border    = lipgloss.Color("#1E3A5F")
)

var rankColors = map[rank.Rank]color.Color{
	rank.E:  lipgloss.Color("#9CA3AF"),
	rank.D:  lipgloss.Color("#22C55E"),
	rank.C:  lipgloss.Color("#3B82F6"),
	rank.B:  lipgloss.Color("#A855F7"),
	rank.A:  lipgloss.Color("#F97316"),
	rank.S:  lipgloss.Color("#EF4444"),
	rank.SS: lipgloss.Color("#FACC15"),
}

// RankColor returns the badge colour for r. Ranks from a custom ladder
// that have no colour of their own use Primary.
func RankColor(r rank.Rank) color.Color {
	if c, ok := rankColors[r]; ok {
		return c
	}
	return Primary
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(Success)

	Warn = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Gold = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)
