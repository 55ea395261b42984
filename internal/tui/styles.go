package tui

import (
	"image/color"

	"noticeboard/internal/config"

	"charm.land/lipgloss/v2"
)

// Styles holds the lipgloss styles used across the shell.
type Styles struct {
	Accent color.Color

	Screen   lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// Header and bottom chrome
	Header     lipgloss.Style
	HeaderApp  lipgloss.Style
	Badge      lipgloss.Style
	TabActive  lipgloss.Style
	TabNormal  lipgloss.Style
	HelpLine   lipgloss.Style
	StatusLine lipgloss.Style

	// Overlays and the login prompt
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Button      lipgloss.Style
	ButtonFocus lipgloss.Style

	SepChar string
}

var currentStyles = buildStyles(config.Default())

// GetStyles returns the current styles
func GetStyles() Styles {
	return currentStyles
}

// InitStyles rebuilds the styles from the [ui] section of the config.
func InitStyles(cfg config.AppConfig) {
	currentStyles = buildStyles(cfg)
}

func buildStyles(cfg config.AppConfig) Styles {
	accent := lipgloss.Color(cfg.UI.Accent)
	if cfg.UI.Accent == "" {
		accent = lipgloss.Color("#f59e0b")
	}
	fg := lipgloss.Color("#e5e7eb")
	dim := lipgloss.Color("#9ca3af")
	ink := lipgloss.Color("#0b0c10")

	s := Styles{Accent: accent, SepChar: "─"}
	s.Screen = lipgloss.NewStyle().Foreground(fg)
	s.Muted = lipgloss.NewStyle().Foreground(dim)
	s.Title = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.Selected = lipgloss.NewStyle().Foreground(ink).Background(accent)
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))

	s.Header = lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
	s.HeaderApp = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.Badge = lipgloss.NewStyle().Foreground(ink).Background(lipgloss.Color("#ef4444")).Bold(true).Padding(0, 1)
	s.TabActive = lipgloss.NewStyle().Foreground(ink).Background(accent).Bold(true).Padding(0, 1)
	s.TabNormal = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	s.HelpLine = lipgloss.NewStyle().Foreground(dim)
	s.StatusLine = lipgloss.NewStyle().Foreground(accent).Italic(true)

	s.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	s.DialogTitle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.Button = lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
	s.ButtonFocus = lipgloss.NewStyle().Foreground(ink).Background(accent).Bold(true).Padding(0, 1)
	return s
}

// CenterText centers text within a given width
func CenterText(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// RenderDialog wraps content in the overlay frame with a title line.
func RenderDialog(title, content string, width int) string {
	styles := GetStyles()
	body := content
	if title != "" {
		body = styles.DialogTitle.Render(title) + "\n\n" + content
	}
	frame := styles.Dialog
	if width > 0 {
		frame = frame.Width(width)
	}
	return frame.Render(body)
}

// RenderButtons renders a row of buttons with the focused one highlighted.
func RenderButtons(focused int, labels ...string) string {
	styles := GetStyles()
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == focused {
			parts[i] = styles.ButtonFocus.Render(label)
		} else {
			parts[i] = styles.Button.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
