// Package shell is the app-shell orchestrator: it owns the route state of
// the Noticeboard client and decides what is shown and when background
// side effects fire.
//
// The Orchestrator is driven from a Bubble Tea Update loop and is the only
// writer of RouteState. Screens talk to it through a Navigation value whose
// methods return commands; the ad scheduler and the notification poller
// run on tea.Tick timers and request changes through the same transition
// functions, re-checking their guards when the tick is delivered.
//
// Transitions:
//
//   - NavigateTo / Navigate     change the screen, or open an overlay route
//   - OpenOverlay / CloseOverlay  the single modal slot
//   - SwitchTab                 bottom navigation
//   - SetAuthenticated          top-level login switch
//   - RequireLogin              login prompt for protected actions
//   - HandleBack                the back dismissal chain
//   - HandleLink                deep links
//
// An Orchestrator is not safe for concurrent use; drive it from a single
// goroutine.
package shell
