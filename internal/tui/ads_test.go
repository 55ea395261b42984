package tui

import (
	"testing"

	"noticeboard/internal/api"
	"noticeboard/internal/shell"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdsConfig() shell.AdsConfig {
	return shell.AdsConfig{
		Enabled:          true,
		SwitchSeconds:    8,
		ExitDelaySeconds: 2,
		CTADefaultText:   "Learn more",
		Items: []api.Ad{
			{ID: "a", Title: "Fresh bread", CTAURL: "https://bakery.example"},
			{ID: "b", Title: "Car wash"},
		},
	}
}

func TestAdsCloseWhenNothingToShow(t *testing.T) {
	e := &env{}
	m := newAdsModel(e, shell.AdsConfig{Enabled: true})
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, shell.CloseOverlayMsg{}, cmd())
}

func TestAdsSkipUnlocksAfterExitDelay(t *testing.T) {
	m := newAdsModel(&env{}, testAdsConfig())
	_ = m.Init()
	assert.Equal(t, 2, m.remaining)

	_, cmd := m.Update(char('x'))
	assert.Nil(t, cmd, "skip is locked during the countdown")

	_, _ = m.Update(adCountdownMsg{gen: m.gen})
	_, _ = m.Update(adCountdownMsg{gen: m.gen})
	assert.Equal(t, 0, m.remaining)

	_, cmd = m.Update(char('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, shell.CloseOverlayMsg{}, cmd())
}

func TestAdsRotationResetsCountdown(t *testing.T) {
	m := newAdsModel(&env{}, testAdsConfig())
	_ = m.Init()
	first := m.gen
	_, _ = m.Update(adCountdownMsg{gen: first})
	assert.Equal(t, 1, m.remaining)

	_, _ = m.Update(adRotateMsg{gen: first})
	assert.Equal(t, 1, m.index)
	assert.Equal(t, 2, m.remaining)
	assert.NotEqual(t, first, m.gen)

	// ticks armed for the previous item are ignored
	_, _ = m.Update(adCountdownMsg{gen: first})
	assert.Equal(t, 2, m.remaining)
}

func TestAdsCallToActionOpensWebView(t *testing.T) {
	m := newAdsModel(&env{}, testAdsConfig())
	_ = m.Init()

	_, cmd := m.Update(char('o'))
	require.NotNil(t, cmd)
	assert.Equal(t, shell.OpenOverlayMsg{Overlay: shell.WebView("https://bakery.example", "Fresh bread")}, cmd())

	_, _ = m.Update(adRotateMsg{gen: m.gen})
	_, cmd = m.Update(char('o'))
	assert.Nil(t, cmd, "second ad has no link")
}

func TestAdsCallToActionWithoutItems(t *testing.T) {
	m := newAdsModel(&env{}, shell.AdsConfig{Enabled: true})
	_ = m.Init()

	var cmd tea.Cmd
	assert.NotPanics(t, func() { _, cmd = m.Update(char('o')) })
	assert.Nil(t, cmd)
	assert.Empty(t, m.View(60, 20))
}

func TestAdsGenerationsArePerEnv(t *testing.T) {
	e := &env{}
	a := newAdsModel(e, testAdsConfig())
	b := newAdsModel(e, testAdsConfig())
	assert.NotEqual(t, a.gen, b.gen)

	other := newAdsModel(&env{}, testAdsConfig())
	assert.Equal(t, 1, other.gen)
}
