package tui

import (
	"strings"

	"noticeboard/internal/api"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const commentsPageSize = 20

type (
	commentsLoadedMsg struct {
		listingID int64
		page      api.CommentPage
		more      bool
		err       error
	}

	commentPostedMsg struct {
		listingID int64
		comment   api.Comment
		err       error
	}
)

// commentsModel lists a listing's comments, newest first, with an input
// for a new one.
type commentsModel struct {
	env      *env
	id       int64
	title    string
	comments []api.Comment
	cursor   string
	loading  bool
	posting  bool
	err      string
	input    textinput.Model
}

func newCommentsModel(e *env, id int64, title string) *commentsModel {
	ti := textinput.New()
	ti.Placeholder = "Write a comment"
	ti.CharLimit = 500
	return &commentsModel{env: e, id: id, title: title, input: ti, loading: true}
}

func (m *commentsModel) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), m.load("", false))
}

func (m *commentsModel) load(cursor string, more bool) tea.Cmd {
	ctx, client, id := m.env.ctx, m.env.client, m.id
	return func() tea.Msg {
		page, err := client.Comments(ctx, id, cursor, commentsPageSize)
		return commentsLoadedMsg{listingID: id, page: page, more: more, err: err}
	}
}

func (m *commentsModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		if msg.listingID != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = describeErr(msg.err)
			return m, nil
		}
		m.err = ""
		if msg.more {
			m.comments = append(m.comments, msg.page.Comments...)
		} else {
			m.comments = msg.page.Comments
		}
		m.cursor = msg.page.NextCursor
		return m, nil

	case commentPostedMsg:
		if msg.listingID != m.id {
			return m, nil
		}
		m.posting = false
		if msg.err != nil {
			return m, statusErr("Could not post comment: " + describeErr(msg.err))
		}
		m.comments = append([]api.Comment{msg.comment}, m.comments...)
		m.input.SetValue("")
		return m, status("Comment posted")

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, Keys.Enter):
			return m, m.post()
		case key.Matches(msg, Keys.MoreComments):
			if m.cursor == "" || m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.load(m.cursor, true)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *commentsModel) post() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.posting {
		return nil
	}
	if !m.env.loggedIn() {
		return m.env.nav.RequireLogin(shell.LoginToComment)
	}
	m.posting = true
	ctx, client, id := m.env.ctx, m.env.client, m.id
	return func() tea.Msg {
		c, err := client.AddComment(ctx, id, text)
		return commentPostedMsg{listingID: id, comment: c, err: err}
	}
}

func (m *commentsModel) View(width, height int) string {
	styles := GetStyles()
	m.input.SetWidth(max(10, width-8))

	var lines []string
	switch {
	case m.err != "":
		lines = append(lines, styles.Error.Render(m.err))
	case m.loading && len(m.comments) == 0:
		lines = append(lines, styles.Muted.Render("Loading comments..."))
	case len(m.comments) == 0:
		lines = append(lines, styles.Muted.Render("No comments yet."))
	}

	room := max(1, height-10)
	for i, c := range m.comments {
		if i >= room {
			break
		}
		author := c.Author
		if author == "" {
			author = "someone"
		}
		lines = append(lines, styles.Title.Render(author)+"  "+c.Text)
	}
	if m.cursor != "" {
		lines = append(lines, styles.Muted.Render("pgdn for older comments"))
	}
	lines = append(lines, "", m.input.View())

	title := "Comments"
	if m.title != "" {
		title += " on " + m.title
	}
	return RenderDialog(title, strings.Join(lines, "\n"), width)
}

func (m *commentsModel) Bindings() []key.Binding {
	return []key.Binding{Keys.Enter, Keys.MoreComments, Keys.Back}
}

func (m *commentsModel) CapturesInput() bool { return true }
