package tui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines all key bindings for the TUI.
// Groups:
//   - Navigation:  Up, Down (lists), PrevTab, NextTab, Tab1..Tab8
//   - Routes:      Search, Notifications, HelpPage, Terms, Privacy, EditProfile
//   - Action:      Enter, Back
//   - Overlays:    Like, Comments, Share, Skip, OpenCTA, CopyURL, MoreComments
//   - Session:     SkipLogin, Logout, NextField
//   - Utility:     ToggleLog, ForceQuit
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	PrevTab key.Binding
	NextTab key.Binding
	TabKeys []key.Binding

	Search        key.Binding
	Notifications key.Binding
	HelpPage      key.Binding
	Terms         key.Binding
	Privacy       key.Binding
	EditProfile   key.Binding

	Enter key.Binding
	Back  key.Binding

	Like         key.Binding
	Comments     key.Binding
	Share        key.Binding
	Skip         key.Binding
	OpenCTA      key.Binding
	CopyURL      key.Binding
	MoreComments key.Binding

	SkipLogin key.Binding
	Logout    key.Binding
	NextField key.Binding
	PrevField key.Binding

	ToggleLog key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns bindings shown in the helpline on tab screens.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Search, k.Notifications, k.HelpPage, k.Back}
}

// FullHelp lists every global binding, grouped for the help page footer.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.Search, k.Notifications},
		{k.HelpPage, k.Terms, k.Privacy, k.EditProfile},
		{k.Enter, k.Back, k.ToggleLog, k.ForceQuit},
	}
}

func tabKey(n string) key.Binding {
	return key.NewBinding(key.WithKeys(n), key.WithHelp(n, "tab "+n))
}

// Keys is the default key map used throughout the TUI.
var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev tab"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next tab"),
	),
	TabKeys: []key.Binding{
		tabKey("1"), tabKey("2"), tabKey("3"), tabKey("4"),
		tabKey("5"), tabKey("6"), tabKey("7"), tabKey("8"),
	},
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notifications"),
	),
	HelpPage: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "help & support"),
	),
	Terms: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "terms"),
	),
	Privacy: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "privacy"),
	),
	EditProfile: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit profile"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Like: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "like"),
	),
	Comments: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comments"),
	),
	Share: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "share"),
	),
	Skip: key.NewBinding(
		key.WithKeys("x", "enter"),
		key.WithHelp("x", "skip"),
	),
	OpenCTA: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	CopyURL: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	MoreComments: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "older"),
	),
	SkipLogin: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "skip"),
	),
	Logout: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "log out"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
	ToggleLog: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "log"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
