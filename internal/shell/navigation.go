package shell

import (
	tea "charm.land/bubbletea/v2"
)

// Navigation is the capability screens use to request transitions. Every
// method returns a command; nothing changes until the orchestrator
// processes the resulting message.
type Navigation struct{}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (Navigation) Navigate(route string, params Params) tea.Cmd {
	return send(NavigateMsg{Route: route, Params: params})
}

func (Navigation) GoBack() tea.Cmd {
	return send(GoBackMsg{})
}

func (Navigation) RequireLogin(action LoginAction) tea.Cmd {
	return send(RequireLoginMsg{Action: action})
}

func (Navigation) OpenOverlay(ov Overlay) tea.Cmd {
	return send(OpenOverlayMsg{Overlay: ov})
}

func (Navigation) CloseOverlay() tea.Cmd {
	return send(CloseOverlayMsg{})
}

func (Navigation) SwitchTab(tab TabKey) tea.Cmd {
	return send(SwitchTabMsg{Tab: tab})
}

func (Navigation) SetAuthenticated(authenticated bool) tea.Cmd {
	return send(SetAuthenticatedMsg{Authenticated: authenticated})
}
