package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"noticeboard/internal/api"
	"noticeboard/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeAds struct {
	ads api.ActiveAds
	err error
}

func (f fakeAds) GetActiveAds(context.Context) (api.ActiveAds, error) {
	return f.ads, f.err
}

type fakeNotifications struct {
	count    int
	countErr error
	items    []api.Notification
	listErr  error

	// fetches counts UnreadCount calls; ListNotifications runs beside it.
	fetches int
}

func (f *fakeNotifications) UnreadCount(context.Context) (int, error) {
	f.fetches++
	return f.count, f.countErr
}

func (f *fakeNotifications) ListNotifications(context.Context) ([]api.Notification, error) {
	return f.items, f.listErr
}

type fakeSessions struct {
	sess session.Session
	err  error
}

func (f fakeSessions) Load(context.Context) (session.Session, error) {
	return f.sess, f.err
}

func newTestOrchestrator(t *testing.T, opts Options) (*Orchestrator, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now
	o := New(context.Background(), opts)
	t.Cleanup(o.Stop)
	return o, clock
}

// loadAds runs the startup ads fetch synchronously.
func loadAds(t *testing.T, o *Orchestrator) {
	t.Helper()
	cmd := o.loadAds()
	require.NotNil(t, cmd)
	o.Update(cmd())
}

func enabledAds(switchSeconds int) api.ActiveAds {
	return api.ActiveAds{
		Enabled:  true,
		Items:    []api.Ad{{ID: "1", Title: "Cafe"}},
		Settings: api.AdSettings{SwitchSeconds: switchSeconds, ExitDelaySeconds: 3},
	}
}

func unread(items ...bool) []api.Notification {
	out := make([]api.Notification, len(items))
	for i, viewed := range items {
		out[i] = api.Notification{ID: string(rune('a' + i)), Viewed: viewed}
	}
	return out
}

func TestColdStartState(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	st := o.State()
	assert.False(t, st.Authenticated)
	assert.Equal(t, TabHome, st.ActiveTab)
	assert.Equal(t, ScreenMain, st.Screen)
	assert.Empty(t, st.ScreenParams)
	assert.Nil(t, st.Overlay)
}

func TestSessionLoadAuthenticates(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{
		Sessions: fakeSessions{sess: session.Session{Token: "tok", GuestID: "g"}},
	})
	o.Update(o.loadSession()())
	assert.True(t, o.State().Authenticated)
	assert.Equal(t, "tok", o.Session().Token)

	guest, _ := newTestOrchestrator(t, Options{
		Sessions: fakeSessions{sess: session.Session{GuestID: "g"}, err: errors.New("corrupt")},
	})
	guest.Update(guest.loadSession()())
	assert.False(t, guest.State().Authenticated)
	assert.Equal(t, "g", guest.Session().GuestID)
}

func TestOpenOverlayReplacesSingleSlot(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.OpenOverlay(PostDetail(1))
	o.OpenOverlay(Comments(1, "Cafe"))

	st := o.State()
	require.NotNil(t, st.Overlay)
	assert.Equal(t, Comments(1, "Cafe"), *st.Overlay)
}

func TestStateIsACopy(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.NavigateTo(ScreenSearch, Params{"q": "pizza"})
	o.OpenOverlay(PostDetail(3))

	st := o.State()
	st.ScreenParams["q"] = "changed"
	st.Overlay.ListingID = 99

	again := o.State()
	assert.Equal(t, "pizza", again.ScreenParams["q"])
	assert.Equal(t, int64(3), again.Overlay.ListingID)
}

func TestSwitchTabKeepsOverlay(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.OpenOverlay(PostDetail(42))

	for _, tab := range Tabs {
		o.SwitchTab(tab)
		st := o.State()
		assert.Equal(t, tab, st.ActiveTab)
		require.NotNil(t, st.Overlay)
		assert.Equal(t, PostDetail(42), *st.Overlay)
	}
}

func TestSwitchTabParams(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.NavigateTo(ScreenSearch, Params{"q": "braai"})

	o.SwitchTab(TabCreate)
	st := o.State()
	assert.Equal(t, ScreenSearch, st.Screen)
	assert.Equal(t, "braai", st.ScreenParams["q"])

	o.SwitchTab(TabEvents)
	st = o.State()
	assert.Equal(t, ScreenMain, st.Screen)
	assert.Empty(t, st.ScreenParams)

	o.SwitchTab("nowhere")
	assert.Equal(t, TabEvents, o.State().ActiveTab)
}

func TestNavigateRoutes(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})

	o.Navigate("PostDetail", Params{"listingId": float64(42)})
	assert.Equal(t, PostDetail(42), *o.State().Overlay)
	assert.Equal(t, ScreenMain, o.State().Screen)

	o.Navigate("search", Params{"q": "jazz"})
	assert.Equal(t, ScreenSearch, o.State().Screen)

	o.CloseOverlay()
	o.Navigate("Comments", nil)
	assert.Nil(t, o.State().Overlay)

	o.Navigate("webview", Params{"url": "https://noticeboard.co.zw"})
	st := o.State()
	assert.Equal(t, TabWebView, st.ActiveTab)
	assert.Equal(t, "https://noticeboard.co.zw", st.ScreenParams.String("url"))

	assert.Nil(t, st.Overlay)

	o.SwitchTab(TabHome)
	o.Navigate("webview", nil)
	assert.Equal(t, TabWebView, o.State().ActiveTab)

	o.Navigate("WebView", Params{"url": "https://noticeboard.co.zw/about"})
	assert.True(t, o.State().OverlayIs(OverlayWebView))
	assert.Equal(t, TabWebView, o.State().ActiveTab)
	o.CloseOverlay()

	o.Navigate("Notifications", nil)
	assert.True(t, o.State().OverlayIs(OverlayNotifications))

	o.SetAuthenticated(true)
	o.Navigate("Login", nil)
	assert.False(t, o.State().Authenticated)

	before := o.State()
	o.Navigate("Settings", nil)
	assert.Equal(t, before, o.State())
}

func TestBackClosesOverlayWithoutTouchingRoute(t *testing.T) {
	for _, tab := range Tabs {
		for _, screen := range []ScreenKey{ScreenMain, ScreenSearch} {
			o, _ := newTestOrchestrator(t, Options{})
			o.SwitchTab(tab)
			o.NavigateTo(screen, Params{"q": "x"})
			o.OpenOverlay(Terms())

			handled, cmd := o.HandleBack()
			st := o.State()
			assert.True(t, handled)
			assert.Nil(t, cmd)
			assert.Nil(t, st.Overlay)
			assert.Equal(t, tab, st.ActiveTab, "tab %s screen %s", tab, screen)
			assert.Equal(t, screen, st.Screen, "tab %s screen %s", tab, screen)
		}
	}
}

func TestBackChainOrder(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.SwitchTab(TabPlaces)
	o.NavigateTo(ScreenSearch, Params{"q": "lake"})

	assert.Equal(t, BackPoppedSearch, o.back(true))
	st := o.State()
	assert.Equal(t, ScreenMain, st.Screen)
	assert.Empty(t, st.ScreenParams)
	assert.Equal(t, TabPlaces, st.ActiveTab)

	assert.Equal(t, BackReturnedHome, o.back(true))
	assert.Equal(t, TabHome, o.State().ActiveTab)

	handled, cmd := o.HandleBack()
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, ExitMsg{}, cmd())
}

func TestGoBackNeverExits(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	assert.Equal(t, BackNone, o.GoBack())
	assert.Nil(t, o.Update(GoBackMsg{}))

	o.OpenOverlay(Ads())
	assert.Equal(t, BackClosedOverlay, o.GoBack())
}

func TestBackOnAdsStampsClock(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{})
	o.OpenOverlay(Ads())
	clock.Advance(time.Minute)
	o.HandleBack()
	assert.Equal(t, clock.Now(), o.LastAdShownAt())

	o.OpenOverlay(Ads())
	clock.Advance(time.Minute)
	o.OpenOverlay(WebView("https://ad.test", "Ad"))
	assert.Equal(t, clock.Now(), o.LastAdShownAt())
}

func TestAdNeverPreemptsOverlay(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{
		Ads:     fakeAds{ads: enabledAds(8)},
		AdFloor: time.Second,
	})
	o.OpenOverlay(PostDetail(5))
	loadAds(t, o)

	for range 20 {
		clock.Advance(time.Hour)
		o.Update(adTickMsg{lifetime: o.lifetime})
		assert.Equal(t, PostDetail(5), *o.State().Overlay)
	}
}

func TestAdIntervalBoundary(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{
		Ads:     fakeAds{ads: enabledAds(8)},
		AdFloor: time.Second,
	})
	loadAds(t, o)
	require.True(t, o.State().OverlayIs(OverlayAds), "cold start ad")

	o.CloseOverlay()
	clock.Advance(8*time.Second - time.Millisecond)
	o.Update(adTickMsg{lifetime: o.lifetime})
	assert.Nil(t, o.State().Overlay)

	clock.Advance(time.Millisecond)
	o.Update(adTickMsg{lifetime: o.lifetime})
	assert.True(t, o.State().OverlayIs(OverlayAds))
}

func TestAdFloorDominatesShortSwitch(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{
		Ads:     fakeAds{ads: enabledAds(8)},
		AdFloor: 30 * time.Second,
	})
	o.OpenOverlay(HelpSupport())
	loadAds(t, o)
	o.CloseOverlay()

	clock.Advance(29 * time.Second)
	o.Update(adTickMsg{lifetime: o.lifetime})
	assert.Nil(t, o.State().Overlay)

	clock.Advance(time.Second)
	o.Update(adTickMsg{lifetime: o.lifetime})
	assert.True(t, o.State().OverlayIs(OverlayAds))
}

func TestAdTickNeedsItems(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{
		Ads:     fakeAds{ads: api.ActiveAds{Enabled: true, Settings: api.AdSettings{SwitchSeconds: 8}}},
		AdFloor: time.Second,
	})
	loadAds(t, o)
	require.Nil(t, o.State().Overlay)

	for range 5 {
		clock.Advance(time.Minute)
		o.Update(adTickMsg{lifetime: o.lifetime})
		assert.Nil(t, o.State().Overlay)
	}
}

func TestAdColdStart(t *testing.T) {
	tests := []struct {
		name   string
		ads    fakeAds
		link   string
		expect *Overlay
	}{
		{name: "enabled", ads: fakeAds{ads: enabledAds(8)}, expect: &Overlay{Kind: OverlayAds}},
		{name: "disabled", ads: fakeAds{ads: api.ActiveAds{Items: enabledAds(8).Items}}},
		{name: "no items", ads: fakeAds{ads: api.ActiveAds{Enabled: true}}},
		{name: "fetch failed", ads: fakeAds{err: api.ErrStatus}},
		{name: "deep link wins", ads: fakeAds{ads: enabledAds(8)}, link: "noticeboard://listing/42", expect: &Overlay{Kind: OverlayPostDetail, ListingID: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOrchestrator(t, Options{Ads: tt.ads, StartLink: tt.link})
			loadAds(t, o)
			assert.Equal(t, tt.expect, o.State().Overlay)
		})
	}
}

func TestLiveLinkBeforeAdsLoadSuppressesColdStartAd(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{Ads: fakeAds{ads: enabledAds(8)}})
	o.Update(LinkMsg{URL: "https://noticeboard.co.zw/listing/7"})
	o.CloseOverlay()
	loadAds(t, o)
	assert.Nil(t, o.State().Overlay)
}

func TestColdStartDeepLink(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{StartLink: "noticeboard://listing/42"})
	st := o.State()
	require.NotNil(t, st.Overlay)
	assert.Equal(t, PostDetail(42), *st.Overlay)
	assert.Equal(t, TabHome, st.ActiveTab)
	assert.Equal(t, ScreenMain, st.Screen)
}

func TestMalformedLinkIsIgnored(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{StartLink: "noticeboard://listing/abc"})
	assert.Nil(t, o.State().Overlay)

	o.Update(LinkMsg{URL: "noticeboard://listing/5"})
	before := o.State()
	o.Update(LinkMsg{URL: "noticeboard://listing/5"})
	assert.Equal(t, before, o.State())
}

func TestLoginPromptFlow(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	o.SetAuthenticated(true)

	o.RequireLogin(LoginToLike)
	prompt, ok := o.LoginPrompt()
	require.True(t, ok)
	assert.Equal(t, LoginPrompt{Action: LoginToLike}, prompt)

	o.Update(LoginPromptResultMsg{Proceed: false})
	_, ok = o.LoginPrompt()
	assert.False(t, ok)
	assert.True(t, o.State().Authenticated)

	o.Update(RequireLoginMsg{Action: LoginToComment})
	o.Update(LoginPromptResultMsg{Proceed: true})
	_, ok = o.LoginPrompt()
	assert.False(t, ok)
	assert.False(t, o.State().Authenticated)

	o.RequireLogin("share")
	_, ok = o.LoginPrompt()
	assert.False(t, ok)
}

func TestStopDropsPendingWork(t *testing.T) {
	o, clock := newTestOrchestrator(t, Options{
		Ads:     fakeAds{ads: enabledAds(8)},
		AdFloor: time.Second,
	})
	loadAds(t, o)
	o.CloseOverlay()
	stale := adTickMsg{lifetime: o.lifetime}

	o.Stop()
	clock.Advance(time.Hour)
	assert.Nil(t, o.Update(stale))
	assert.Nil(t, o.Update(OpenOverlayMsg{Overlay: Privacy()}))
	assert.Nil(t, o.State().Overlay)
}
