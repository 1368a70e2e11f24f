package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestTooSmall(t *testing.T) {
	assert.True(t, TooSmall(40, 30))
	assert.True(t, TooSmall(100, 10))
	assert.False(t, TooSmall(MinWidth, MinHeight))
}

func TestFrameFillsHeight(t *testing.T) {
	header := Header("Assessment", "E", 80)
	footer := Footer([]KeyHint{{Key: "Esc", Description: "Quit"}}, 80)
	frame := Frame(header, "body", footer, 80, 30)

	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.Contains(t, frame, "HUNTER SYSTEM")
	assert.Contains(t, frame, "Quit")
}
