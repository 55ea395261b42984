package tui

import (
	"context"
	"strings"

	"noticeboard/internal/api"
	"noticeboard/internal/config"
	"noticeboard/internal/logger"
	"noticeboard/internal/session"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type screenID struct {
	tab    shell.TabKey
	screen shell.ScreenKey
}

// AppModel is the root Bubble Tea model. The orchestrator owns the route;
// AppModel renders it and keeps one view per slot in step with it.
type AppModel struct {
	env *env

	// Terminal dimensions
	width  int
	height int

	header   HeaderModel
	helpline HelplineModel
	logPanel LogPanelModel

	screen   view
	screenID screenID

	// overlayFor is the overlay the current overlay view was built for
	overlay    view
	overlayFor *shell.Overlay

	login *loginModel

	promptFocus int
	status      statusMsg

	// Commands of the views built before the program started
	initCmd tea.Cmd

	// Ready flag (set after first WindowSizeMsg)
	ready bool
}

// NewAppModel creates the root model around a running orchestrator.
func NewAppModel(ctx context.Context, cfg config.AppConfig, client *api.Client, store *session.Store, orch *shell.Orchestrator) AppModel {
	m := AppModel{
		env: &env{
			ctx:      ctx,
			cfg:      cfg,
			client:   client,
			sessions: store,
			orch:     orch,
		},
		header:   NewHeaderModel(),
		helpline: NewHelplineModel(),
		logPanel: NewLogPanelModel(),
	}
	m.initCmd = m.sync()
	return m
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return logger.RecoverTUI(m.env.ctx, tea.Batch(m.env.orch.Init(), m.logPanel.Init(), m.initCmd))
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			// Suppress further panics during recovery
			defer func() { _ = recover() }()

			if logger.TUIShutdown != nil {
				logger.TUIShutdown()
			}
			logger.SetTUIEnabled(false)

			if _, ok := r.(logger.FatalError); ok {
				return
			}
			logger.FatalWithStackSkip(m.env.ctx, 2, "TUI Update Panic: %v", r)
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		m.ready = true
		return m, nil

	case tea.KeyPressMsg:
		m.status = statusMsg{}
		cmd := m.handleKey(msg)
		return m, logger.RecoverTUI(m.env.ctx, cmd)

	case statusMsg:
		m.status = msg
		return m, nil

	case logLineMsg:
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		return m, logger.RecoverTUI(m.env.ctx, cmd)

	case shell.ExitMsg:
		m.env.orch.Stop()
		return m, tea.Quit

	case shell.SessionExpiredMsg:
		logger.Notice(m.env.ctx, "Session expired, logging out")
		return m, logger.RecoverTUI(m.env.ctx, m.env.logout("Your session expired. Please log in again."))

	case loggedOutMsg:
		if msg.err != nil {
			logger.Error(m.env.ctx, "Clearing session: %v", msg.err)
		}
		m.status = statusMsg{text: msg.reason}
		cmd := tea.Sequence(
			func() tea.Msg { return shell.SessionChangedMsg{Session: msg.session} },
			m.env.nav.SetAuthenticated(false),
		)
		return m, logger.RecoverTUI(m.env.ctx, cmd)
	}

	cmds := []tea.Cmd{m.env.orch.Update(msg)}
	cmds = append(cmds, m.sync(), m.forward(msg))
	return m, logger.RecoverTUI(m.env.ctx, tea.Batch(cmds...))
}

// sync rebuilds the views whose slot changed in the route state.
func (m *AppModel) sync() tea.Cmd {
	st := m.env.orch.State()
	var cmds []tea.Cmd

	if !sameOverlay(m.overlayFor, st.Overlay) {
		m.overlay, m.overlayFor = nil, nil
		if st.Overlay != nil {
			ov := *st.Overlay
			m.overlayFor = &ov
			m.overlay = newOverlayView(m.env, ov)
			cmds = append(cmds, m.overlay.Init())
		}
	}

	id := screenID{tab: st.ActiveTab, screen: st.Screen}
	rebuilt := false
	if m.screen == nil || id != m.screenID {
		m.screenID, rebuilt = id, true
		m.screen = newScreen(m.env, st.ActiveTab, st.Screen, st.ScreenParams)
		if st.Authenticated {
			cmds = append(cmds, m.screen.Init())
		}
	}

	switch {
	case !st.Authenticated && m.login == nil:
		m.login = newLoginModel(m.env)
		cmds = append(cmds, m.login.Init())
	case st.Authenticated && m.login != nil:
		m.login = nil
		if !rebuilt {
			// the screen was built behind the login screen
			cmds = append(cmds, m.screen.Init())
		}
	}

	if _, ok := m.env.orch.LoginPrompt(); !ok {
		m.promptFocus = 0
	}
	return tea.Batch(cmds...)
}

// forward hands a non-key message to every live view. Each view ignores
// results that are not addressed to it.
func (m *AppModel) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.overlay != nil {
		m.overlay, cmd = m.overlay.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.screen != nil {
		m.screen, cmd = m.screen.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.login != nil {
		var v view
		v, cmd = m.login.Update(msg)
		m.login = v.(*loginModel)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleKey routes a key press. Force quit and the log toggle always win.
// The login prompt then takes every key. Otherwise esc means back, and
// global keys apply unless the focused view is taking text.
func (m *AppModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, Keys.ForceQuit) {
		m.env.orch.Stop()
		return tea.Quit
	}
	if key.Matches(msg, Keys.ToggleLog) {
		m.logPanel.Toggle()
		return nil
	}

	if _, ok := m.env.orch.LoginPrompt(); ok {
		return m.handlePromptKey(msg)
	}

	if key.Matches(msg, Keys.Back) {
		return func() tea.Msg { return shell.BackMsg{} }
	}

	st := m.env.orch.State()
	var focused view
	switch {
	case m.overlay != nil:
		focused = m.overlay
	case !st.Authenticated && m.login != nil:
		focused = m.login
	case m.screen != nil:
		focused = m.screen
	}
	if focused == nil {
		return nil
	}

	if !focused.CapturesInput() && st.Authenticated {
		if cmd, ok := m.globalKey(msg, st); ok {
			return cmd
		}
	}

	next, cmd := focused.Update(msg)
	switch {
	case m.overlay != nil:
		m.overlay = next
	case !st.Authenticated && m.login != nil:
		m.login = next.(*loginModel)
	default:
		m.screen = next
	}
	return cmd
}

func (m *AppModel) globalKey(msg tea.KeyPressMsg, st shell.RouteState) (tea.Cmd, bool) {
	nav := m.env.nav
	switch {
	case key.Matches(msg, Keys.PrevTab):
		return nav.SwitchTab(neighbourTab(st.ActiveTab, -1)), true
	case key.Matches(msg, Keys.NextTab):
		return nav.SwitchTab(neighbourTab(st.ActiveTab, 1)), true
	case key.Matches(msg, Keys.Search):
		return nav.Navigate(string(shell.ScreenSearch), nil), true
	case key.Matches(msg, Keys.Notifications):
		return nav.OpenOverlay(shell.Notifications()), true
	case key.Matches(msg, Keys.HelpPage):
		return nav.OpenOverlay(shell.HelpSupport()), true
	case key.Matches(msg, Keys.Terms):
		return nav.OpenOverlay(shell.Terms()), true
	case key.Matches(msg, Keys.Privacy):
		return nav.OpenOverlay(shell.Privacy()), true
	case key.Matches(msg, Keys.EditProfile):
		return nav.OpenOverlay(shell.EditProfile()), true
	}
	for i, b := range Keys.TabKeys {
		if i < len(shell.Tabs) && key.Matches(msg, b) {
			return nav.SwitchTab(shell.Tabs[i]), true
		}
	}
	return nil, false
}

func (m *AppModel) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	result := func(proceed bool) tea.Cmd {
		return func() tea.Msg { return shell.LoginPromptResultMsg{Proceed: proceed} }
	}
	switch {
	case key.Matches(msg, Keys.Back):
		return result(false)
	case key.Matches(msg, Keys.PrevTab), key.Matches(msg, Keys.NextTab), key.Matches(msg, Keys.NextField):
		m.promptFocus = 1 - m.promptFocus
	case key.Matches(msg, Keys.Enter):
		return result(m.promptFocus == 0)
	}
	return nil
}

// View implements tea.Model
func (m AppModel) View() tea.View {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(m.env.ctx, "AppModel.View Panic: %v", r)
		}
	}()

	if !m.ready {
		return tea.NewView("Initializing...")
	}

	styles := GetStyles()
	st := m.env.orch.State()
	sess := m.env.orch.Session()

	var focused view
	var body string
	var bottom []string

	top := []string{
		m.header.View(st, m.env.orch.Unread(), sess),
		styles.Muted.Render(strings.Repeat(styles.SepChar, m.width)),
	}
	if m.status.text != "" {
		style := styles.StatusLine
		if m.status.isErr {
			style = styles.Error
		}
		bottom = append(bottom, style.Render(m.status.text))
	}
	if st.Authenticated && !st.ActiveTab.FullBleed() {
		bottom = append(bottom, renderTabBar(st.ActiveTab, m.width))
	}

	// help line is filled in once the focused view is known
	contentH := max(1, m.height-len(top)-len(bottom)-1-m.logPanel.Height(m.height))
	contentW := max(1, m.width-2)

	switch {
	case !st.Authenticated && m.login != nil:
		focused = m.login
		body = m.login.View(m.width, contentH)
	case m.screen != nil:
		focused = m.screen
		body = lipgloss.NewStyle().Padding(0, 1).Render(m.screen.View(contentW, contentH))
	}
	body = lipgloss.NewStyle().Width(m.width).Height(contentH).MaxHeight(contentH).Render(body)

	if m.overlay != nil {
		focused = m.overlay
		ow := min(contentW, 72)
		fg := m.overlay.View(ow, contentH)
		body = Overlay(fg, body, OverlayCenter, OverlayCenter, 0, 0)
	}

	if p, ok := m.env.orch.LoginPrompt(); ok {
		fg := RenderDialog("Log in", p.Message()+"\n\n"+RenderButtons(m.promptFocus, "Log in", "Not now"), min(contentW, 48))
		body = Overlay(fg, body, OverlayCenter, OverlayCenter, 0, 0)
		focused = nil
	}

	var bindings []key.Binding
	if focused != nil {
		bindings = focused.Bindings()
	} else {
		bindings = []key.Binding{Keys.Enter, Keys.Back}
	}
	bottom = append(bottom, m.helpline.View(m.width, bindings))
	if panel := m.logPanel.View(m.width, m.height); panel != "" {
		bottom = append(bottom, panel)
	}

	rendered := lipgloss.JoinVertical(lipgloss.Left, append(append(top, body), bottom...)...)

	v := tea.NewView(rendered)
	v.AltScreen = true
	v.ReportFocus = true
	return v
}
