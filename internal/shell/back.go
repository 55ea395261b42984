package shell

import (
	tea "charm.land/bubbletea/v2"
)

// BackResult is the transition a back signal produced.
type BackResult int

const (
	BackNone BackResult = iota
	BackClosedOverlay
	BackPoppedSearch
	BackReturnedHome
	BackExit
)

func (r BackResult) String() string {
	switch r {
	case BackClosedOverlay:
		return "closed overlay"
	case BackPoppedSearch:
		return "left search"
	case BackReturnedHome:
		return "returned home"
	case BackExit:
		return "exit"
	}
	return "none"
}

// HandleBack consumes the back signal. It is always handled; at the root
// the returned command asks the host to exit.
func (o *Orchestrator) HandleBack() (bool, tea.Cmd) {
	if o.back(true) == BackExit {
		return true, func() tea.Msg { return ExitMsg{} }
	}
	return true, nil
}

// GoBack walks the same chain for a screen leaving itself, but stops short
// of exiting the app.
func (o *Orchestrator) GoBack() BackResult {
	return o.back(false)
}

func (o *Orchestrator) back(allowExit bool) BackResult {
	switch {
	case o.state.Overlay != nil:
		o.CloseOverlay()
		return BackClosedOverlay
	case o.state.Screen == ScreenSearch:
		o.NavigateTo(ScreenMain, nil)
		return BackPoppedSearch
	case o.state.ActiveTab != TabHome:
		o.SwitchTab(TabHome)
		return BackReturnedHome
	case allowExit:
		return BackExit
	}
	return BackNone
}
