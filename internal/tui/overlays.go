package tui

import (
	"strings"

	"noticeboard/internal/content"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// newOverlayView builds the view for the overlay in the shell's slot.
func newOverlayView(e *env, ov shell.Overlay) view {
	switch ov.Kind {
	case shell.OverlayPostDetail:
		return newPostDetailModel(e, ov.ListingID)
	case shell.OverlayComments:
		return newCommentsModel(e, ov.ListingID, ov.ListingTitle)
	case shell.OverlayWebView:
		return &webViewModel{env: e, url: ov.URL, title: ov.Title}
	case shell.OverlayNotifications:
		return &notificationsModel{env: e, loading: true}
	case shell.OverlayAds:
		return newAdsModel(e, e.orch.AdsConfig())
	case shell.OverlayHelpSupport:
		return newPageModel(e, content.HelpSupport)
	case shell.OverlayTerms:
		return newPageModel(e, content.Terms)
	case shell.OverlayPrivacy:
		return newPageModel(e, content.Privacy)
	case shell.OverlayEditProfile:
		return newEditProfileModel(e)
	}
	return &webViewModel{env: e, title: ov.String()}
}

// sameOverlay reports whether the view built for a still matches b.
func sameOverlay(a, b *shell.Overlay) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyToClipboard(text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: "Clipboard unavailable: " + text, isErr: true}
		}
		return statusMsg{text: done}
	}
}

func renderWebPage(title, url string, width int) string {
	styles := GetStyles()
	if title == "" {
		title = "Web"
	}
	if url == "" {
		return styles.Title.Render(title) + "\n\n" + styles.Muted.Render("Nothing to show.")
	}
	return styles.Title.Render(title) + "\n\n" +
		url + "\n\n" +
		styles.Muted.Render("Open this address in your browser. Press y to copy it.")
}

// webViewModel is the in-app browser overlay.
type webViewModel struct {
	env   *env
	url   string
	title string
}

func (m *webViewModel) Init() tea.Cmd { return nil }

func (m *webViewModel) Update(msg tea.Msg) (view, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, Keys.CopyURL) && m.url != "" {
		return m, copyToClipboard(m.url, "Link copied")
	}
	return m, nil
}

func (m *webViewModel) View(width, height int) string {
	return RenderDialog("", renderWebPage(m.title, m.url, width), width)
}

func (m *webViewModel) Bindings() []key.Binding {
	return []key.Binding{Keys.CopyURL, Keys.Back}
}

func (m *webViewModel) CapturesInput() bool { return false }

// pageLoadedMsg carries a static page.
type pageLoadedMsg struct {
	name string
	page content.Page
	err  error
}

// pageModel shows help and support, terms or privacy in a viewport.
type pageModel struct {
	env      *env
	name     string
	page     content.Page
	err      error
	loaded   bool
	viewport viewport.Model
}

func newPageModel(e *env, name string) *pageModel {
	return &pageModel{env: e, name: name, viewport: viewport.New()}
}

func (m *pageModel) Init() tea.Cmd {
	ctx, name := m.env.ctx, m.name
	return func() tea.Msg {
		page, err := content.Load(ctx, name)
		return pageLoadedMsg{name: name, page: page, err: err}
	}
}

func (m *pageModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.name != m.name {
			return m, nil
		}
		m.loaded = true
		m.page, m.err = msg.page, msg.err
		m.viewport.SetContent(m.page.Text())
		return m, nil
	case tea.KeyPressMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *pageModel) View(width, height int) string {
	styles := GetStyles()
	inner := max(10, width-4)
	m.viewport.SetWidth(inner)
	m.viewport.SetHeight(max(3, height-6))

	title := m.page.Title
	var body string
	switch {
	case !m.loaded:
		body = styles.Muted.Render("Loading...")
	case m.err != nil:
		body = styles.Error.Render("This page could not be loaded: " + m.err.Error())
	default:
		body = m.viewport.View()
	}
	if title == "" {
		title = strings.ReplaceAll(m.name, "_", " ")
	}
	return RenderDialog(title, body, width)
}

func (m *pageModel) Bindings() []key.Binding {
	return []key.Binding{Keys.Up, Keys.Down, Keys.Back}
}

func (m *pageModel) CapturesInput() bool { return false }
