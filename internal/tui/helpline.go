package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
)

// HelplineModel represents the help line at the bottom of the TUI
type HelplineModel struct {
	help help.Model
}

// NewHelplineModel creates a new helpline model
func NewHelplineModel() HelplineModel {
	h := help.New()
	styles := GetStyles()
	h.Styles.ShortKey = styles.Title
	h.Styles.ShortDesc = styles.Muted
	h.Styles.ShortSeparator = styles.Muted
	return HelplineModel{help: h}
}

// View renders the bindings, truncated to width.
func (m HelplineModel) View(width int, bindings []key.Binding) string {
	m.help.SetWidth(width)
	return GetStyles().HelpLine.Render(m.help.ShortHelpView(bindings))
}
