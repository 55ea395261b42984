package tui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestOverlayCentersForeground(t *testing.T) {
	bg := strings.Join([]string{"aaaaa", "aaaaa", "aaaaa"}, "\n")

	got := Overlay("XX", bg, OverlayCenter, OverlayCenter, 0, 0)

	assert.Equal(t, "aaaaa\naXXaa\naaaaa", ansi.Strip(got))
}

func TestOverlayKeepsStyledBackgroundOutsideForeground(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	bg := red.Render("0123456789")

	got := Overlay("ab", bg, OverlayLeft, OverlayTop, 3, 0)

	assert.Equal(t, "012ab56789", ansi.Strip(got))
	assert.Equal(t, 10, ansi.StringWidth(got))
}

func TestOverlayClipsRowsPastBackground(t *testing.T) {
	got := Overlay("1\n2\n3", "....\n....", OverlayLeft, OverlayBottom, 0, 0)

	// foreground is taller than the background, so it starts at the top
	assert.Equal(t, "1...\n2...", ansi.Strip(got))
}

func TestOverlayPadsShortBackgroundLines(t *testing.T) {
	got := Overlay("XY", "ab", OverlayLeft, OverlayTop, 4, 0)

	assert.Equal(t, "ab  XY", ansi.Strip(got))
}
