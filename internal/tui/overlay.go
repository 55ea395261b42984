package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// OverlayPosition places a foreground block on its background.
type OverlayPosition int

const (
	OverlayCenter OverlayPosition = iota
	OverlayTop
	OverlayBottom
	OverlayLeft
	OverlayRight
)

// Overlay composites foreground over background. Both may contain ANSI
// styling; cells are measured and cut with x/ansi so escape sequences and
// wide runes on either side of the foreground survive.
func Overlay(foreground, background string, hPos, vPos OverlayPosition, xOffset, yOffset int) string {
	if foreground == "" {
		return background
	}
	if background == "" {
		return foreground
	}

	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(foreground, "\n")
	bgWidth := lipgloss.Width(background)
	fgWidth := lipgloss.Width(foreground)

	var x, y int
	switch hPos {
	case OverlayLeft:
		x = 0
	case OverlayRight:
		x = bgWidth - fgWidth
	default:
		x = (bgWidth - fgWidth) / 2
	}
	switch vPos {
	case OverlayTop:
		y = 0
	case OverlayBottom:
		y = len(bgLines) - len(fgLines)
	default:
		y = (len(bgLines) - len(fgLines)) / 2
	}
	x = max(0, x+xOffset)
	y = max(0, y+yOffset)

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = spliceLine(bgLines[row], fgLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces the cells of bg starting at column x with fg.
func spliceLine(bg, fg string, x int) string {
	bgW := ansi.StringWidth(bg)
	if bgW < x {
		bg += strings.Repeat(" ", x-bgW)
		bgW = x
	}
	fgW := ansi.StringWidth(fg)

	var b strings.Builder
	b.WriteString(ansi.Truncate(bg, x, ""))
	b.WriteString("\x1b[0m")
	b.WriteString(fg)
	b.WriteString("\x1b[0m")
	if x+fgW < bgW {
		b.WriteString(ansi.TruncateLeft(bg, x+fgW, ""))
	}
	return b.String()
}
