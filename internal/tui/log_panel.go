package tui

import (
	"strings"

	"noticeboard/internal/logger"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const logPanelMaxLines = 200

// logLineMsg carries a new log line from the subscription channel.
type logLineMsg string

// LogPanelModel is the log viewer under the helpline. Collapsed it takes
// no room; expanded it shows the tail of the log in a third of the screen.
type LogPanelModel struct {
	expanded bool
	viewport viewport.Model
	lines    []string
}

// NewLogPanelModel creates a new log panel in collapsed state.
func NewLogPanelModel() LogPanelModel {
	return LogPanelModel{viewport: viewport.New()}
}

// Init starts the live subscription.
func (m LogPanelModel) Init() tea.Cmd {
	return waitForLogLine()
}

func waitForLogLine() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-logger.SubscribeLogLines()
		if !ok {
			return nil
		}
		return logLineMsg(line)
	}
}

// Toggle expands or collapses the panel.
func (m *LogPanelModel) Toggle() {
	m.expanded = !m.expanded
	m.viewport.GotoBottom()
}

// Height is the number of rows the panel takes.
func (m LogPanelModel) Height(total int) int {
	if !m.expanded {
		return 0
	}
	return max(3, total/3)
}

func (m LogPanelModel) Update(msg tea.Msg) (LogPanelModel, tea.Cmd) {
	if line, ok := msg.(logLineMsg); ok {
		m.lines = append(m.lines, string(line))
		if len(m.lines) > logPanelMaxLines {
			m.lines = m.lines[len(m.lines)-logPanelMaxLines:]
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		return m, waitForLogLine()
	}
	return m, nil
}

// View renders the panel with its title strip, or nothing when collapsed.
func (m LogPanelModel) View(width, total int) string {
	if !m.expanded {
		return ""
	}
	styles := GetStyles()
	h := m.Height(total)
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(h - 1)
	m.viewport.GotoBottom()

	label := " Log "
	dash := max(0, (width-lipgloss.Width(label))/2)
	strip := strings.Repeat(styles.SepChar, dash) + label
	strip += strings.Repeat(styles.SepChar, max(0, width-lipgloss.Width(strip)))
	return lipgloss.JoinVertical(lipgloss.Left, styles.Muted.Render(strip), styles.Muted.Render(m.viewport.View()))
}
