package tui

import (
	"strconv"
	"strings"

	"noticeboard/internal/shell"
	"noticeboard/internal/version"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// newScreen builds the view for a tab and screen pair.
func newScreen(e *env, tab shell.TabKey, screen shell.ScreenKey, params shell.Params) view {
	switch tab {
	case shell.TabAccount:
		return &accountScreen{env: e}
	case shell.TabCreate:
		return &createScreen{env: e, params: params}
	case shell.TabWebView:
		return &webTabScreen{env: e, url: params.String("url"), title: params.String("title")}
	}
	if screen == shell.ScreenSearch {
		return newSearchScreen(e, tab, params)
	}
	return &feedScreen{env: e, tab: tab}
}

var feedBlurbs = map[shell.TabKey]string{
	shell.TabHome:        "Latest notices from around you.",
	shell.TabBusinesses:  "Shops, services and trades.",
	shell.TabEvents:      "What is on this week.",
	shell.TabPlaces:      "Places worth a visit.",
	shell.TabRestaurants: "Where to eat.",
}

// feedScreen is one of the five listing tabs.
type feedScreen struct {
	env *env
	tab shell.TabKey
}

func (s *feedScreen) Init() tea.Cmd { return nil }

func (s *feedScreen) Update(msg tea.Msg) (view, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, Keys.Enter) {
		return s, s.env.nav.Navigate(string(shell.ScreenSearch), nil)
	}
	return s, nil
}

func (s *feedScreen) View(width, height int) string {
	styles := GetStyles()
	var b strings.Builder
	b.WriteString(styles.Title.Render(tabTitle(s.tab)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(feedBlurbs[s.tab]))
	b.WriteString("\n\n")
	b.WriteString("Press enter or / to find a listing by number or link.\n")
	b.WriteString("Links opened with `" + version.CommandName + " open <link>` show up here.")
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(b.String())
}

func (s *feedScreen) Bindings() []key.Binding { return Keys.ShortHelp() }
func (s *feedScreen) CapturesInput() bool     { return false }

// searchScreen is the stacked search screen of a listing tab.
type searchScreen struct {
	env   *env
	tab   shell.TabKey
	input textinput.Model
	note  string
}

func newSearchScreen(e *env, tab shell.TabKey, params shell.Params) *searchScreen {
	ti := textinput.New()
	ti.Placeholder = "listing number or link"
	ti.Prompt = "/ "
	ti.CharLimit = 512
	if q := params.String("q"); q != "" {
		ti.SetValue(q)
	}
	return &searchScreen{env: e, tab: tab, input: ti}
}

func (s *searchScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *searchScreen) Update(msg tea.Msg) (view, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, Keys.Enter) {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit opens a listing typed as a number or pasted as a link.
func (s *searchScreen) submit() tea.Cmd {
	q := strings.TrimSpace(s.input.Value())
	if q == "" {
		return nil
	}
	if id, err := strconv.ParseInt(q, 10, 64); err == nil && id > 0 {
		s.note = ""
		return s.env.nav.Navigate(shell.OverlayPostDetail.String(), shell.Params{"listingId": id})
	}
	if ov, ok := s.env.links().Resolve(q); ok {
		s.note = ""
		return s.env.nav.OpenOverlay(ov)
	}
	s.note = "Nothing matches " + strconv.Quote(q)
	return nil
}

func (s *searchScreen) View(width, height int) string {
	styles := GetStyles()
	s.input.SetWidth(max(10, width-4))
	out := styles.Title.Render("Search "+tabTitle(s.tab)) + "\n\n" + s.input.View()
	if s.note != "" {
		out += "\n\n" + styles.Muted.Render(s.note)
	}
	return out
}

func (s *searchScreen) Bindings() []key.Binding {
	return []key.Binding{Keys.Enter, Keys.Back}
}

func (s *searchScreen) CapturesInput() bool { return true }

// accountScreen shows the identity, or a way in for guests.
type accountScreen struct {
	env *env
}

func (s *accountScreen) Init() tea.Cmd {
	if !s.env.loggedIn() {
		return s.env.nav.RequireLogin(shell.LoginToAccount)
	}
	return nil
}

func (s *accountScreen) Update(msg tea.Msg) (view, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case !s.env.loggedIn() && key.Matches(kp, Keys.Enter):
		return s, s.env.nav.RequireLogin(shell.LoginToAccount)
	case s.env.loggedIn() && key.Matches(kp, Keys.Logout):
		return s, s.env.logout("Logged out")
	}
	return s, nil
}

func (s *accountScreen) View(width, height int) string {
	styles := GetStyles()
	sess := s.env.orch.Session()
	if !sess.LoggedIn() {
		return styles.Title.Render("Account") + "\n\n" +
			"You are browsing as a guest.\n" +
			styles.Muted.Render("Press enter to log in.")
	}
	lines := []string{
		styles.Title.Render("Account"),
		"",
		"Name   " + sess.User.Name(),
	}
	if sess.User.Email != "" {
		lines = append(lines, "Email  "+sess.User.Email)
	}
	lines = append(lines, "", styles.Muted.Render("e edit profile · o log out"))
	return strings.Join(lines, "\n")
}

func (s *accountScreen) Bindings() []key.Binding {
	if s.env.loggedIn() {
		return []key.Binding{Keys.EditProfile, Keys.Logout, Keys.PrevTab, Keys.NextTab}
	}
	return []key.Binding{Keys.Enter, Keys.PrevTab, Keys.NextTab}
}

func (s *accountScreen) CapturesInput() bool { return false }

// createScreen points at the listing editor. It is full bleed.
type createScreen struct {
	env    *env
	params shell.Params
}

func (s *createScreen) Init() tea.Cmd { return nil }

func (s *createScreen) Update(msg tea.Msg) (view, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, Keys.Enter) {
		url := "https://" + s.env.cfg.Links.Host + "/create"
		if c := s.params.String("category"); c != "" {
			url += "?category=" + c
		}
		return s, s.env.nav.OpenOverlay(shell.WebView(url, "Create a listing"))
	}
	return s, nil
}

func (s *createScreen) View(width, height int) string {
	styles := GetStyles()
	out := styles.Title.Render("Create a listing") + "\n\n"
	if c := s.params.String("category"); c != "" {
		out += "Category: " + c + "\n\n"
	}
	return out + "Listings are created in the browser.\n" + styles.Muted.Render("Press enter to open the editor.")
}

func (s *createScreen) Bindings() []key.Binding {
	return []key.Binding{Keys.Enter, Keys.PrevTab, Keys.NextTab, Keys.Back}
}

func (s *createScreen) CapturesInput() bool { return false }

// webTabScreen is the web tab; it shows the page it was pointed at.
type webTabScreen struct {
	env   *env
	url   string
	title string
}

func (s *webTabScreen) Init() tea.Cmd { return nil }

func (s *webTabScreen) Update(msg tea.Msg) (view, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, Keys.CopyURL) && s.url != "" {
		return s, copyToClipboard(s.url, "Link copied")
	}
	return s, nil
}

func (s *webTabScreen) View(width, height int) string {
	return renderWebPage(s.title, s.url, width)
}

func (s *webTabScreen) Bindings() []key.Binding {
	return []key.Binding{Keys.CopyURL, Keys.PrevTab, Keys.NextTab, Keys.Back}
}

func (s *webTabScreen) CapturesInput() bool { return false }
