package tui

import (
	"strings"

	"noticeboard/internal/api"
	"noticeboard/internal/logger"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

type (
	notificationsLoadedMsg struct {
		items []api.Notification
		err   error
	}

	markedViewedMsg struct {
		ids []string
		err error
	}
)

// notificationsModel lists the backend notifications. Opening it marks
// the unviewed ones viewed.
type notificationsModel struct {
	env     *env
	items   []api.Notification
	cursor  int
	loading bool
	err     string
}

func (m *notificationsModel) Init() tea.Cmd {
	ctx, client := m.env.ctx, m.env.client
	return func() tea.Msg {
		items, err := client.ListNotifications(ctx)
		return notificationsLoadedMsg{items: items, err: err}
	}
}

func (m *notificationsModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = describeErr(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.cursor = 0
		return m, m.markViewed()

	case markedViewedMsg:
		if msg.err != nil {
			logger.Warn(m.env.ctx, "Marking notifications viewed: %v", msg.err)
			return m, nil
		}
		seen := make(map[string]bool, len(msg.ids))
		for _, id := range msg.ids {
			seen[id] = true
		}
		for i := range m.items {
			if seen[m.items[i].ID] {
				m.items[i].Viewed = true
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, Keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, Keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, Keys.Enter):
			if m.cursor < len(m.items) && m.items[m.cursor].ListingID > 0 {
				return m, m.env.nav.OpenOverlay(shell.PostDetail(m.items[m.cursor].ListingID))
			}
		}
	}
	return m, nil
}

func (m *notificationsModel) markViewed() tea.Cmd {
	var ids []string
	for _, n := range m.items {
		if !n.Viewed && n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	ctx, client := m.env.ctx, m.env.client
	return func() tea.Msg {
		return markedViewedMsg{ids: ids, err: client.MarkViewed(ctx, ids)}
	}
}

func (m *notificationsModel) View(width, height int) string {
	styles := GetStyles()
	var lines []string
	switch {
	case m.loading:
		lines = append(lines, styles.Muted.Render("Loading..."))
	case m.err != "":
		lines = append(lines, styles.Error.Render(m.err))
	case len(m.items) == 0:
		lines = append(lines, styles.Muted.Render("You're all caught up."))
	}

	room := max(1, height-6)
	start := 0
	if m.cursor >= room {
		start = m.cursor - room + 1
	}
	for i := start; i < len(m.items) && i < start+room; i++ {
		n := m.items[i]
		dot := "  "
		if !n.Viewed {
			dot = "● "
		}
		line := dot + n.Title
		if n.Body != "" {
			line += styles.Muted.Render("  " + n.Body)
		}
		if i == m.cursor {
			line = styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return RenderDialog("Notifications", strings.Join(lines, "\n"), width)
}

func (m *notificationsModel) Bindings() []key.Binding {
	return []key.Binding{Keys.Up, Keys.Down, Keys.Enter, Keys.Back}
}

func (m *notificationsModel) CapturesInput() bool { return false }
