package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"noticeboard/internal/constants"
	"noticeboard/internal/version"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigDir returns the absolute path to the noticeboard configuration directory.
// On macOS it uses ~/.config rather than Application Support, matching the other platforms.
func GetConfigDir() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDirName())
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appDirName())
	}
	return filepath.Join(xdg.ConfigHome, appDirName())
}

// GetConfigFilePath returns the absolute path to noticeboard.toml.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetStateDir returns the absolute path to the noticeboard state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return filepath.Join(StateHomeOverride, appDirName())
	}
	return filepath.Join(xdg.StateHome, appDirName())
}

// GetSessionFilePath returns where the login session and guest identity live.
func GetSessionFilePath() string {
	return filepath.Join(GetStateDir(), constants.SessionFileName)
}

// GetLinkInboxPath returns the file that `nb open` appends deep links to.
func GetLinkInboxPath() string {
	return filepath.Join(GetStateDir(), constants.LinkInboxFileName)
}

// GetLogFilePath returns the application log file path.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// EnsureStateDir creates the state directory if needed.
func EnsureStateDir() error {
	return os.MkdirAll(GetStateDir(), 0o755)
}
