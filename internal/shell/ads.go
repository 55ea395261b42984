package shell

import (
	"time"

	"noticeboard/internal/api"
	"noticeboard/internal/constants"
	"noticeboard/internal/logger"

	tea "charm.land/bubbletea/v2"
)

// AdsConfig is the interstitial configuration, loaded once at startup.
type AdsConfig struct {
	Enabled          bool
	SwitchSeconds    int
	ExitDelaySeconds int
	CTADefaultText   string
	Items            []api.Ad
}

// AdsConfigFrom converts the API response.
func AdsConfigFrom(a api.ActiveAds) AdsConfig {
	return AdsConfig{
		Enabled:          a.Enabled,
		SwitchSeconds:    a.Settings.SwitchSeconds,
		ExitDelaySeconds: a.Settings.ExitDelaySeconds,
		CTADefaultText:   a.Settings.CTADefaultText,
		Items:            a.Items,
	}
}

// RotateEvery is how long each item stays up inside the Ads overlay.
func (c AdsConfig) RotateEvery() time.Duration {
	return time.Duration(max(constants.MinAdRotateSeconds, c.SwitchSeconds)) * time.Second
}

// ExitDelay is how long the skip control stays disabled.
func (c AdsConfig) ExitDelay() time.Duration {
	return time.Duration(max(0, c.ExitDelaySeconds)) * time.Second
}

// CTAText is the call-to-action label for ad.
func (c AdsConfig) CTAText(ad api.Ad) string {
	switch {
	case ad.CTAText != "":
		return ad.CTAText
	case c.CTADefaultText != "":
		return c.CTADefaultText
	}
	return constants.DefaultCTAText
}

// AdScheduler decides when the periodic interstitial is due. It holds no
// route state; the orchestrator asks it on every tick.
type AdScheduler struct {
	Tick  time.Duration
	Floor time.Duration
}

// Interval is the minimum time between two ads.
func (s AdScheduler) Interval(cfg AdsConfig) time.Duration {
	return max(s.Floor, time.Duration(cfg.SwitchSeconds)*time.Second)
}

// Due reports whether an ad should open now. An open overlay is never
// preempted, and reaching the interval exactly counts as due. There is
// nothing to show without items.
func (s AdScheduler) Due(cfg AdsConfig, st RouteState, lastShown, now time.Time) bool {
	if !cfg.Enabled || len(cfg.Items) == 0 || st.Overlay != nil {
		return false
	}
	return now.Sub(lastShown) >= s.Interval(cfg)
}

// ColdStart reports whether an ad should open as soon as the config loads.
func (s AdScheduler) ColdStart(cfg AdsConfig, st RouteState, linkRequested bool) bool {
	return cfg.Enabled && len(cfg.Items) > 0 && !linkRequested && st.Overlay == nil
}

func (s AdScheduler) schedule(lifetime int) tea.Cmd {
	return tea.Tick(s.Tick, func(time.Time) tea.Msg {
		return adTickMsg{lifetime: lifetime}
	})
}

func (o *Orchestrator) loadAds() tea.Cmd {
	if o.adsSvc == nil {
		return nil
	}
	ctx, svc, life := o.ctx, o.adsSvc, o.lifetime
	return func() tea.Msg {
		ads, err := svc.GetActiveAds(ctx)
		return adsLoadedMsg{lifetime: life, ads: AdsConfigFrom(ads), err: err}
	}
}

func (o *Orchestrator) onAdsLoaded(msg adsLoadedMsg) {
	o.adsLoaded = true
	if msg.err != nil {
		logger.Warn(o.ctx, "Loading ads: %v", msg.err)
		return
	}
	o.ads = msg.ads
	logger.Debug(o.ctx, "Ads loaded: enabled=%t items=%d", o.ads.Enabled, len(o.ads.Items))

	if o.adScheduler.ColdStart(o.ads, o.state, o.startupLink) {
		o.OpenOverlay(Ads())
	}
}

func (o *Orchestrator) onAdTick() {
	if o.adScheduler.Due(o.ads, o.state, o.lastAdShownAt, o.now()) {
		logger.Debug(o.ctx, "Ad interval reached")
		o.OpenOverlay(Ads())
	}
}
