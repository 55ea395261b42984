package tui

import (
	"errors"
	"strings"

	"noticeboard/internal/api"
	"noticeboard/internal/logger"
	"noticeboard/internal/session"
	"noticeboard/internal/shell"
	"noticeboard/internal/version"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	loginFieldUser = iota
	loginFieldPass
	loginButtonLogin
	loginButtonSkip
	loginFocusCount
)

// loginDoneMsg carries the saved session after a successful login.
type loginDoneMsg struct {
	session session.Session
	err     error
}

// loginModel is shown whenever the shell is not authenticated.
type loginModel struct {
	env   *env
	user  textinput.Model
	pass  textinput.Model
	focus int
	busy  bool
	err   string
}

func newLoginModel(e *env) *loginModel {
	user := textinput.New()
	user.Placeholder = "email or username"
	user.Prompt = "User     "
	user.CharLimit = 128

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password "
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 128

	return &loginModel{env: e, user: user, pass: pass}
}

func (m *loginModel) Init() tea.Cmd {
	return m.setFocus(loginFieldUser)
}

func (m *loginModel) setFocus(i int) tea.Cmd {
	m.focus = (i + loginFocusCount) % loginFocusCount
	m.user.Blur()
	m.pass.Blur()
	switch m.focus {
	case loginFieldUser:
		return m.user.Focus()
	case loginFieldPass:
		return m.pass.Focus()
	}
	return nil
}

func (m *loginModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) || errors.Is(msg.err, api.ErrStatus) {
				m.err = "Invalid username or password"
			} else {
				m.err = describeErr(msg.err)
			}
			logger.Warn(m.env.ctx, "Login failed: %v", msg.err)
			return m, nil
		}
		logger.Info(m.env.ctx, "Logged in as %s", msg.session.User.Name())
		m.pass.SetValue("")
		return m, tea.Sequence(
			func() tea.Msg { return shell.SessionChangedMsg{Session: msg.session} },
			m.env.nav.SetAuthenticated(true),
		)

	case tea.KeyPressMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, Keys.SkipLogin):
			return m, m.env.nav.SetAuthenticated(true)
		case key.Matches(msg, Keys.NextField):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, Keys.PrevField):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, Keys.Enter):
			switch m.focus {
			case loginFieldUser:
				return m, m.setFocus(loginFieldPass)
			case loginButtonSkip:
				return m, m.env.nav.SetAuthenticated(true)
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case loginFieldUser:
		m.user, cmd = m.user.Update(msg)
	case loginFieldPass:
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) submit() tea.Cmd {
	user := strings.TrimSpace(m.user.Value())
	pass := m.pass.Value()
	if user == "" || pass == "" {
		m.err = "Enter your username and password"
		return nil
	}
	m.err = ""
	m.busy = true

	ctx, client, store := m.env.ctx, m.env.client, m.env.sessions
	return func() tea.Msg {
		res, err := client.Login(ctx, user, pass)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		sess, err := store.Save(ctx, res.Token, res.User)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		client.SetToken(sess.Token)
		return loginDoneMsg{session: sess}
	}
}

func (m *loginModel) View(width, height int) string {
	styles := GetStyles()
	w := min(48, max(20, width-4))
	m.user.SetWidth(w - 12)
	m.pass.SetWidth(w - 12)

	lines := []string{
		styles.Title.Render("Welcome to " + version.ApplicationName),
		styles.Muted.Render("Log in to like, comment and manage your account."),
		"",
		m.user.View(),
		m.pass.View(),
		"",
	}
	focused := -1
	switch m.focus {
	case loginButtonLogin:
		focused = 0
	case loginButtonSkip:
		focused = 1
	}
	lines = append(lines, RenderButtons(focused, "Log in", "Continue as guest"))
	switch {
	case m.busy:
		lines = append(lines, "", styles.Muted.Render("Logging in..."))
	case m.err != "":
		lines = append(lines, "", styles.Error.Render(m.err))
	}

	box := RenderDialog("", strings.Join(lines, "\n"), w)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *loginModel) Bindings() []key.Binding {
	return []key.Binding{Keys.NextField, Keys.Enter, Keys.SkipLogin, Keys.ForceQuit}
}

func (m *loginModel) CapturesInput() bool { return true }
