package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"noticeboard/internal/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paths.StateHomeOverride = dir
	paths.ConfigHomeOverride = dir
	t.Cleanup(func() {
		paths.StateHomeOverride = ""
		paths.ConfigHomeOverride = ""
	})
	return dir
}

func TestLoadCreatesDefaults(t *testing.T) {
	useTempHome(t)

	conf, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, Default().API, conf.API)
	assert.FileExists(t, paths.GetConfigFilePath())
}

func TestSaveAndLoad(t *testing.T) {
	useTempHome(t)

	conf := Default()
	conf.API.BaseURL = "http://localhost:8080/"
	conf.Ads.MinIntervalSeconds = 90
	conf.Notifications.PollSeconds = 15
	require.NoError(t, SaveAppConfig(conf))

	loaded, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", loaded.API.BaseURL)
	assert.Equal(t, 90*time.Second, loaded.AdFloor())
	assert.Equal(t, 15*time.Second, loaded.NotificationPoll())
}

func TestLoadNormalizesBadIntervals(t *testing.T) {
	useTempHome(t)

	path := paths.GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	data := []byte("[ads]\ntick_seconds = 0\nmin_interval_seconds = -4\n\n[notifications]\npoll_seconds = -1\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	conf, err := LoadAppConfig()
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Ads.TickSeconds, conf.Ads.TickSeconds)
	assert.Equal(t, d.Ads.MinIntervalSeconds, conf.Ads.MinIntervalSeconds)
	assert.Equal(t, d.Notifications.PollSeconds, conf.Notifications.PollSeconds)
	assert.Equal(t, d.Links, conf.Links)
}

func TestLoadInvalidTOML(t *testing.T) {
	useTempHome(t)

	path := paths.GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url = "), 0o644))

	conf, err := LoadAppConfig()
	require.Error(t, err)
	assert.Equal(t, Default().API, conf.API)
}

func TestExpandVariablesStateHome(t *testing.T) {
	dir := useTempHome(t)
	assert.Equal(t, filepath.Join(dir, "nb.log"), ExpandVariables("${XDG_STATE_HOME}/nb.log"))
}
