package tui

import (
	"strconv"
	"strings"

	"noticeboard/internal/session"
	"noticeboard/internal/shell"
	"noticeboard/internal/version"

	"charm.land/lipgloss/v2"
)

// HeaderModel represents the header bar at the top of the TUI
type HeaderModel struct {
	width int
}

// NewHeaderModel creates a new header model
func NewHeaderModel() HeaderModel {
	return HeaderModel{}
}

// SetWidth sets the header width
func (m *HeaderModel) SetWidth(width int) {
	m.width = width
}

// View renders the app name and location on the left, the unread badge
// and the identity on the right.
func (m HeaderModel) View(st shell.RouteState, unread int, sess session.Session) string {
	styles := GetStyles()

	left := styles.HeaderApp.Render(version.ApplicationName)
	where := tabTitle(st.ActiveTab)
	if st.Screen == shell.ScreenSearch {
		where += " / Search"
	}
	if st.Overlay != nil {
		where += " / " + st.Overlay.Kind.String()
	}
	left += styles.Muted.Render("  " + where)

	var right []string
	if unread > 0 {
		label := strconv.Itoa(unread)
		if unread > 99 {
			label = "99+"
		}
		right = append(right, styles.Badge.Render("● "+label))
	}
	if sess.LoggedIn() {
		right = append(right, sess.User.Name())
	} else {
		right = append(right, styles.Muted.Render("guest"))
	}
	r := strings.Join(right, " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(r) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + r)
}
