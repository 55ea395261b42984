package tui

import (
	"strconv"
	"strings"
	"time"

	"noticeboard/internal/shell"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

type (
	adRotateMsg    struct{ gen int }
	adCountdownMsg struct{ gen int }
)

// adsModel rotates the interstitial items. Skip unlocks after the exit
// delay, which restarts whenever the item changes.
type adsModel struct {
	env       *env
	cfg       shell.AdsConfig
	index     int
	remaining int
	gen       int
}

func newAdsModel(e *env, cfg shell.AdsConfig) *adsModel {
	return &adsModel{env: e, cfg: cfg, gen: e.nextAdsGen()}
}

func (m *adsModel) Init() tea.Cmd {
	if !m.cfg.Enabled || len(m.cfg.Items) == 0 {
		return m.env.nav.CloseOverlay()
	}
	return m.show(0)
}

func (m *adsModel) show(i int) tea.Cmd {
	m.index = i % len(m.cfg.Items)
	m.remaining = int(m.cfg.ExitDelay() / time.Second)
	gen := m.gen
	cmds := []tea.Cmd{
		tea.Tick(m.cfg.RotateEvery(), func(time.Time) tea.Msg { return adRotateMsg{gen: gen} }),
	}
	if m.remaining > 0 {
		cmds = append(cmds, m.countdown())
	}
	return tea.Batch(cmds...)
}

func (m *adsModel) countdown() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return adCountdownMsg{gen: gen} })
}

func (m *adsModel) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case adRotateMsg:
		if msg.gen != m.gen || len(m.cfg.Items) < 2 {
			return m, nil
		}
		// a fresh generation drops the countdown of the previous item
		m.gen = m.env.nextAdsGen()
		return m, m.show(m.index + 1)

	case adCountdownMsg:
		if msg.gen != m.gen || m.remaining <= 0 {
			return m, nil
		}
		m.remaining--
		if m.remaining > 0 {
			return m, m.countdown()
		}
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, Keys.OpenCTA):
			if m.index >= len(m.cfg.Items) {
				return m, nil
			}
			ad := m.cfg.Items[m.index]
			if ad.CTAURL == "" {
				return m, nil
			}
			title := ad.Title
			if title == "" {
				title = m.cfg.CTAText(ad)
			}
			return m, m.env.nav.OpenOverlay(shell.WebView(ad.CTAURL, title))
		case key.Matches(msg, Keys.Skip):
			if m.remaining > 0 {
				return m, nil
			}
			return m, m.env.nav.CloseOverlay()
		}
	}
	return m, nil
}

func (m *adsModel) View(width, height int) string {
	styles := GetStyles()
	if len(m.cfg.Items) == 0 {
		return ""
	}
	ad := m.cfg.Items[m.index]

	var lines []string
	if ad.Title != "" {
		lines = append(lines, styles.Title.Render(ad.Title))
	}
	if ad.MediaURL != "" {
		kind := ad.MediaType
		if kind == "" {
			kind = "image"
		}
		lines = append(lines, styles.Muted.Render("["+kind+"] "+ad.MediaURL))
	}
	lines = append(lines, "")
	if ad.CTAURL != "" {
		lines = append(lines, RenderButtons(0, m.cfg.CTAText(ad)+" (o)"))
	}

	skip := "Skip (x)"
	if m.remaining > 0 {
		skip = "Skip in " + strconv.Itoa(m.remaining) + "s"
	}
	footer := styles.Muted.Render("Sponsored · " + strconv.Itoa(m.index+1) + "/" + strconv.Itoa(len(m.cfg.Items)))
	lines = append(lines, "", footer+"   "+skip)
	return RenderDialog("", strings.Join(lines, "\n"), width)
}

func (m *adsModel) Bindings() []key.Binding {
	return []key.Binding{Keys.OpenCTA, Keys.Skip, Keys.Back}
}

func (m *adsModel) CapturesInput() bool { return false }
