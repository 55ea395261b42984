package shell

import (
	"noticeboard/internal/session"
)

// Commands. Screens send these through Navigation; the root model forwards
// every message to Orchestrator.Update.
type (
	// NavigateMsg routes by name: an overlay route opens the overlay, a tab
	// name switches tab, anything else is a screen.
	NavigateMsg struct {
		Route  string
		Params Params
	}

	OpenOverlayMsg struct {
		Overlay Overlay
	}

	CloseOverlayMsg struct{}

	SwitchTabMsg struct {
		Tab TabKey
	}

	SetAuthenticatedMsg struct {
		Authenticated bool
	}

	RequireLoginMsg struct {
		Action LoginAction
	}

	// LoginPromptResultMsg answers the login prompt.
	LoginPromptResultMsg struct {
		Proceed bool
	}

	// GoBackMsg is a screen asking to leave itself. It walks the back chain
	// but never exits the app.
	GoBackMsg struct{}

	// BackMsg is the hardware/esc back signal.
	BackMsg struct{}

	// LinkMsg is a deep link delivered while running.
	LinkMsg struct {
		URL string
	}

	// SessionChangedMsg reports a login, logout or session refresh.
	SessionChangedMsg struct {
		Session session.Session
	}
)

// SessionExpiredMsg is emitted when the API rejects the stored token. The
// route is already demoted to the login screen; the host clears the
// stored session and replies with SessionChangedMsg.
type SessionExpiredMsg struct{}

// ExitMsg asks the host to quit. The root model maps it to tea.Quit.
type ExitMsg struct{}

// Internal timer and result messages. Each carries the lifetime it was
// created in so nothing lands after Stop.
type (
	adTickMsg struct {
		lifetime int
	}

	notifyTickMsg struct {
		lifetime int
	}

	notifyRefreshMsg struct {
		lifetime int
		seq      int
	}

	unreadResultMsg struct {
		lifetime      int
		authoritative *int
		local         *int
		unauthorized  bool
	}

	adsLoadedMsg struct {
		lifetime int
		ads      AdsConfig
		err      error
	}

	sessionLoadedMsg struct {
		lifetime int
		session  session.Session
		err      error
	}
)
