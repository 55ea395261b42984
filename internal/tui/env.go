package tui

import (
	"context"
	"errors"

	"noticeboard/internal/api"
	"noticeboard/internal/config"
	"noticeboard/internal/session"
	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// env is what screens and overlays share. The orchestrator is read only
// here; every transition goes through nav.
type env struct {
	ctx      context.Context
	cfg      config.AppConfig
	client   *api.Client
	sessions *session.Store
	orch     *shell.Orchestrator
	nav      shell.Navigation

	// adsGen tells ticks of one Ads view apart from those of an earlier one.
	adsGen int
}

func (e *env) nextAdsGen() int {
	e.adsGen++
	return e.adsGen
}

func (e *env) links() shell.LinkMatcher {
	return shell.LinkMatcher{Scheme: e.cfg.Links.Scheme, Host: e.cfg.Links.Host}
}

func (e *env) loggedIn() bool {
	return e.orch.Session().LoggedIn()
}

// view is implemented by every tab screen, overlay and the login screen.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View(width, height int) string
	Bindings() []key.Binding
	// CapturesInput is true while a text field has focus, so global
	// single-letter keys must not be intercepted.
	CapturesInput() bool
}

type (
	// statusMsg replaces the status line under the content area.
	statusMsg struct {
		text  string
		isErr bool
	}

	// loggedOutMsg is sent after the session file was cleared.
	loggedOutMsg struct {
		session session.Session
		reason  string
		err     error
	}
)

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusErr(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: true} }
}

// describeErr turns an API error into a line for the status bar.
func describeErr(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Please log in again"
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond"
	}
	return err.Error()
}

// logout clears the stored session but keeps the guest identity.
func (e *env) logout(reason string) tea.Cmd {
	ctx, store, client := e.ctx, e.sessions, e.client
	return func() tea.Msg {
		sess, err := store.Clear(ctx)
		client.SetToken("")
		return loggedOutMsg{session: sess, reason: reason, err: err}
	}
}
