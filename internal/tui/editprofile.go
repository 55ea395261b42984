package tui

import (
	"strings"

	"noticeboard/internal/logger"
	"noticeboard/internal/session"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

type profileSavedMsg struct {
	session session.Session
	err     error
}

// editProfileModel edits the display name and email kept in the local
// session.
type editProfileModel struct {
	env   *env
	name  textinput.Model
	email textinput.Model
	focus int
	err   string
}

func newEditProfileModel(e *env) *editProfileModel {
	user := e.orch.Session().User

	name := textinput.New()
	name.Prompt = "Name  "
	name.CharLimit = 64
	name.SetValue(user.DisplayName)

	email := textinput.New()
	email.Prompt = "Email "
	email.CharLimit = 128
	email.SetValue(user.Email)

	return &editProfileModel{env: e, name: name, email: email}
}

func (m *editProfileModel) Init() tea.Cmd {
	if !m.env.loggedIn() {
		return nil
	}
	return m.name.Focus()
}

func (m *editProfileModel) setFocus(i int) tea.Cmd {
	m.focus = (i + 2) % 2
	if m.focus == 0 {
		m.email.Blur()
		return m.name.Focus()
	}
	m.name.Blur()
	return m.email.Focus()
}

func (m *editProfileModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		logger.Info(m.env.ctx, "Profile updated for %s", msg.session.User.Name())
		return m, tea.Batch(
			func() tea.Msg { return shell.SessionChangedMsg{Session: msg.session} },
			m.env.nav.CloseOverlay(),
			status("Profile saved"),
		)

	case tea.KeyPressMsg:
		if !m.env.loggedIn() {
			if key.Matches(msg, Keys.Enter) {
				return m, m.env.nav.RequireLogin(shell.LoginToAccount)
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, Keys.NextField):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, Keys.PrevField):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, Keys.Enter):
			if m.focus == 0 {
				return m, m.setFocus(1)
			}
			return m, m.save()
		}
	}

	if !m.env.loggedIn() {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m *editProfileModel) save() tea.Cmd {
	name := strings.TrimSpace(m.name.Value())
	email := strings.TrimSpace(m.email.Value())
	if name == "" {
		m.err = "Name cannot be empty"
		return nil
	}
	if email != "" && !strings.Contains(email, "@") {
		m.err = "That email address does not look right"
		return nil
	}
	m.err = ""

	cur := m.env.orch.Session()
	user := cur.User
	user.DisplayName, user.Email = name, email
	ctx, store, token := m.env.ctx, m.env.sessions, cur.Token
	return func() tea.Msg {
		sess, err := store.Save(ctx, token, user)
		return profileSavedMsg{session: sess, err: err}
	}
}

func (m *editProfileModel) View(width, height int) string {
	styles := GetStyles()
	if !m.env.loggedIn() {
		return RenderDialog("Edit profile", "Log in to edit your profile.\n"+styles.Muted.Render("Press enter to log in."), width)
	}
	m.name.SetWidth(max(10, width-12))
	m.email.SetWidth(max(10, width-12))
	body := m.name.View() + "\n" + m.email.View() + "\n\n" + styles.Muted.Render("enter save")
	if m.err != "" {
		body += "\n" + styles.Error.Render(m.err)
	}
	return RenderDialog("Edit profile", body, width)
}

func (m *editProfileModel) Bindings() []key.Binding {
	return []key.Binding{Keys.NextField, Keys.Enter, Keys.Back}
}

func (m *editProfileModel) CapturesInput() bool { return m.env.loggedIn() }
