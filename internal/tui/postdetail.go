package tui

import (
	"fmt"

	"noticeboard/internal/api"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

type likeResultMsg struct {
	listingID int64
	result    api.LikeResult
	err       error
}

// postDetailModel shows one listing with its social actions.
type postDetailModel struct {
	env   *env
	id    int64
	title string
	liked bool
	likes int
	busy  bool
}

func newPostDetailModel(e *env, id int64) *postDetailModel {
	return &postDetailModel{env: e, id: id, title: fmt.Sprintf("Listing #%d", id)}
}

func (m *postDetailModel) Init() tea.Cmd { return nil }

func (m *postDetailModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case likeResultMsg:
		if msg.listingID != m.id {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			return m, statusErr("Could not update like: " + describeErr(msg.err))
		}
		m.liked, m.likes = msg.result.Liked, msg.result.LikesCount
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, Keys.Like):
			if !m.env.loggedIn() {
				return m, m.env.nav.RequireLogin(shell.LoginToLike)
			}
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.toggleLike()
		case key.Matches(msg, Keys.Comments):
			if !m.env.loggedIn() {
				return m, m.env.nav.RequireLogin(shell.LoginToComment)
			}
			return m, m.env.nav.OpenOverlay(shell.Comments(m.id, m.title))
		case key.Matches(msg, Keys.Share):
			text := m.title + " - " + shell.ListingURL(m.env.cfg.Links.Host, m.id)
			return m, copyToClipboard(text, "Listing link copied")
		}
	}
	return m, nil
}

func (m *postDetailModel) toggleLike() tea.Cmd {
	ctx, client, id, like := m.env.ctx, m.env.client, m.id, !m.liked
	return func() tea.Msg {
		res, err := client.LikeListing(ctx, id, like)
		return likeResultMsg{listingID: id, result: res, err: err}
	}
}

func (m *postDetailModel) View(width, height int) string {
	styles := GetStyles()
	heart := "♡"
	if m.liked {
		heart = "♥"
	}
	body := shell.ListingURL(m.env.cfg.Links.Host, m.id) + "\n\n" +
		fmt.Sprintf("%s %d likes", heart, m.likes) + "\n\n" +
		styles.Muted.Render("l like · c comments · s share")
	return RenderDialog(m.title, body, width)
}

func (m *postDetailModel) Bindings() []key.Binding {
	return []key.Binding{Keys.Like, Keys.Comments, Keys.Share, Keys.Back}
}

func (m *postDetailModel) CapturesInput() bool { return false }
