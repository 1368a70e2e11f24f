package components

import (
	"charm.land/lipgloss/v2"

	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/ui/theme"
)

// RankBadge renders a rank as a coloured tag, e.g. "[ C ]".
func RankBadge(r rank.Rank) string {
	return lipgloss.NewStyle().
		Foreground(theme.BgCard).
		Background(theme.RankColor(r)).
		Bold(true).
		Padding(0, 1).
		Render(string(r))
}

// RankTitle renders the badge followed by the rank's display name.
func RankTitle(cfg rank.Config) string {
	name := lipgloss.NewStyle().Foreground(theme.RankColor(cfg.ID)).Bold(true).Render(cfg.DisplayName)
	return RankBadge(cfg.ID) + " " + name
}
