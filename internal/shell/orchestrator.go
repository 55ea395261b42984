package shell

import (
	"context"
	"time"

	"noticeboard/internal/constants"
	"noticeboard/internal/logger"
	"noticeboard/internal/session"

	tea "charm.land/bubbletea/v2"
)

// Options configures an Orchestrator. Nil services disable the matching
// background work.
type Options struct {
	Sessions      SessionService
	Ads           AdsService
	Notifications NotificationService

	AdTick           time.Duration
	AdFloor          time.Duration
	NotificationPoll time.Duration
	RefreshDelay     time.Duration

	// Links selects the deep links this app accepts. Zero means the
	// default scheme and host.
	Links LinkMatcher

	// StartLink is a deep link handed over on the command line.
	StartLink string

	Now func() time.Time
}

// Orchestrator owns RouteState and every transition of it.
type Orchestrator struct {
	ctx context.Context
	now func() time.Time

	sessions SessionService
	adsSvc   AdsService

	state   RouteState
	prompt  *LoginPrompt
	session session.Session

	ads           AdsConfig
	adsLoaded     bool
	lastAdShownAt time.Time
	startupLink   bool
	links         LinkMatcher
	adScheduler   AdScheduler

	poller     NotificationPoller
	unread     int
	refreshSeq int

	lifetime int
	stopped  bool
}

// New builds an orchestrator in its cold-start state. A StartLink that
// resolves is opened immediately.
func New(ctx context.Context, opts Options) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AdTick <= 0 {
		opts.AdTick = constants.DefaultAdTickSeconds * time.Second
	}
	if opts.AdFloor <= 0 {
		opts.AdFloor = constants.DefaultAdFloorSeconds * time.Second
	}
	if opts.NotificationPoll <= 0 {
		opts.NotificationPoll = constants.DefaultNotifyPollSeconds * time.Second
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = constants.NotificationRefreshDelaySec * time.Second
	}

	o := &Orchestrator{
		ctx:           ctx,
		now:           opts.Now,
		sessions:      opts.Sessions,
		adsSvc:        opts.Ads,
		state:         InitialState(),
		lastAdShownAt: opts.Now(),
		links:         opts.Links,
		adScheduler:   AdScheduler{Tick: opts.AdTick, Floor: opts.AdFloor},
		poller: NotificationPoller{
			Interval:     opts.NotificationPoll,
			RefreshDelay: opts.RefreshDelay,
			svc:          opts.Notifications,
		},
	}
	if opts.StartLink != "" {
		o.HandleLink(opts.StartLink)
	}
	return o
}

// Init starts the session and ads loads and arms both schedulers.
func (o *Orchestrator) Init() tea.Cmd {
	return tea.Batch(
		o.loadSession(),
		o.loadAds(),
		o.adScheduler.schedule(o.lifetime),
		o.poller.schedule(o.lifetime),
	)
}

// Stop tears the orchestrator down. Pending ticks and results are dropped
// and no further command is accepted.
func (o *Orchestrator) Stop() {
	if o.stopped {
		return
	}
	o.stopped = true
	o.lifetime++
	logger.Debug(o.ctx, "Orchestrator stopped")
}

// Update applies one message. It returns the follow-up command, if any.
func (o *Orchestrator) Update(msg tea.Msg) tea.Cmd {
	if o.stopped {
		return nil
	}

	switch msg := msg.(type) {
	case NavigateMsg:
		return o.Navigate(msg.Route, msg.Params)
	case OpenOverlayMsg:
		return o.OpenOverlay(msg.Overlay)
	case CloseOverlayMsg:
		o.CloseOverlay()
	case SwitchTabMsg:
		o.SwitchTab(msg.Tab)
	case SetAuthenticatedMsg:
		o.SetAuthenticated(msg.Authenticated)
	case RequireLoginMsg:
		o.RequireLogin(msg.Action)
	case LoginPromptResultMsg:
		if msg.Proceed {
			o.ProceedToLogin()
		} else {
			o.DismissLoginPrompt()
		}
	case GoBackMsg:
		o.GoBack()
	case BackMsg:
		_, cmd := o.HandleBack()
		return cmd
	case LinkMsg:
		return o.HandleLink(msg.URL)
	case SessionChangedMsg:
		o.session = msg.Session
		return o.refreshUnread()
	case tea.FocusMsg:
		logger.Trace(o.ctx, "Foregrounded, refreshing notifications")
		return o.refreshUnread()

	case adTickMsg:
		if msg.lifetime != o.lifetime {
			return nil
		}
		o.onAdTick()
		return o.adScheduler.schedule(o.lifetime)
	case notifyTickMsg:
		if msg.lifetime != o.lifetime {
			return nil
		}
		return tea.Batch(o.refreshUnread(), o.poller.schedule(o.lifetime))
	case notifyRefreshMsg:
		if msg.lifetime != o.lifetime || msg.seq != o.refreshSeq {
			return nil
		}
		return o.refreshUnread()
	case unreadResultMsg:
		if msg.lifetime != o.lifetime {
			return nil
		}
		return o.onUnreadResult(msg)
	case adsLoadedMsg:
		if msg.lifetime != o.lifetime {
			return nil
		}
		o.onAdsLoaded(msg)
	case sessionLoadedMsg:
		if msg.lifetime != o.lifetime {
			return nil
		}
		return o.onSessionLoaded(msg)
	}
	return nil
}

// State returns a copy of the current route.
func (o *Orchestrator) State() RouteState {
	return o.state.clone()
}

// Unread is the reconciled notification badge count.
func (o *Orchestrator) Unread() int {
	return o.unread
}

// Session is the last session loaded or reported.
func (o *Orchestrator) Session() session.Session {
	return o.session
}

// AdsConfig is the ad configuration loaded at startup.
func (o *Orchestrator) AdsConfig() AdsConfig {
	return o.ads
}

// LastAdShownAt is when the Ads overlay last left the screen.
func (o *Orchestrator) LastAdShownAt() time.Time {
	return o.lastAdShownAt
}

// Navigate routes by name.
func (o *Orchestrator) Navigate(route string, params Params) tea.Cmd {
	if kind, ok := ParseOverlayKind(route); ok {
		ov, ok := overlayFromRoute(kind, params)
		if !ok {
			logger.Debug(o.ctx, "Ignoring %s route with missing params", kind)
			return nil
		}
		return o.OpenOverlay(ov)
	}
	if tab, ok := ParseTab(route); ok {
		if tab.FullBleed() && len(params) > 0 {
			o.state.ScreenParams = params.clone()
		}
		o.SwitchTab(tab)
		return nil
	}
	if route == "login" || route == "Login" {
		o.SetAuthenticated(false)
		return nil
	}
	screen, ok := parseScreen(route)
	if !ok {
		logger.Debug(o.ctx, "Ignoring unknown route '%s'", route)
		return nil
	}
	o.NavigateTo(screen, params)
	return nil
}

// NavigateTo shows a full-page screen in the current tab. The overlay, if
// any, stays on top.
func (o *Orchestrator) NavigateTo(screen ScreenKey, params Params) {
	o.state.Screen = screen
	o.state.ScreenParams = params.clone()
	logger.Trace(o.ctx, "Screen -> %s", screen)
}

// OpenOverlay puts ov in the modal slot, replacing whatever was there.
func (o *Orchestrator) OpenOverlay(ov Overlay) tea.Cmd {
	if o.state.Overlay != nil && o.state.Overlay.Kind == OverlayAds && ov.Kind != OverlayAds {
		o.lastAdShownAt = o.now()
	}
	o.state.Overlay = &ov
	logger.Debug(o.ctx, "Overlay -> %s", ov)

	if ov.Kind == OverlayNotifications {
		o.refreshSeq++
		return o.poller.scheduleRefresh(o.lifetime, o.refreshSeq)
	}
	return nil
}

// CloseOverlay empties the modal slot. Closing Ads stamps the ad clock.
func (o *Orchestrator) CloseOverlay() {
	if o.state.Overlay == nil {
		return
	}
	if o.state.Overlay.Kind == OverlayAds {
		o.lastAdShownAt = o.now()
	}
	logger.Trace(o.ctx, "Overlay %s closed", *o.state.Overlay)
	o.state.Overlay = nil
}

// SwitchTab changes the bottom tab. Create and WebView keep the screen
// params; every other tab starts on its main screen.
func (o *Orchestrator) SwitchTab(tab TabKey) {
	if _, ok := ParseTab(string(tab)); !ok {
		logger.Debug(o.ctx, "Ignoring unknown tab '%s'", tab)
		return
	}
	o.state.ActiveTab = tab
	if !tab.FullBleed() {
		o.state.Screen = ScreenMain
		o.state.ScreenParams = Params{}
	}
	logger.Trace(o.ctx, "Tab -> %s", tab)
}

// SetAuthenticated flips between the login screen and the app.
func (o *Orchestrator) SetAuthenticated(authenticated bool) {
	o.state.Authenticated = authenticated
}

func (o *Orchestrator) loadSession() tea.Cmd {
	if o.sessions == nil {
		return nil
	}
	ctx, svc, life := o.ctx, o.sessions, o.lifetime
	return func() tea.Msg {
		sess, err := svc.Load(ctx)
		return sessionLoadedMsg{lifetime: life, session: sess, err: err}
	}
}

func (o *Orchestrator) onSessionLoaded(msg sessionLoadedMsg) tea.Cmd {
	if msg.err != nil {
		logger.Warn(o.ctx, "Loading session: %v", msg.err)
	}
	o.session = msg.session
	if msg.session.LoggedIn() {
		o.SetAuthenticated(true)
	}
	return o.refreshUnread()
}
