package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "Noticeboard"

// CommandName is the name of the executable command (e.g., "nb").
// It is initialized dynamically from the executable filename.
var CommandName = "nb"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X noticeboard/internal/version.Version=v1.YYYYMMDD.N"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	CommandName = commandName(os.Args[0])
}

// commandName derives the command from the executable path. go run and
// test binaries fall back to "nb".
func commandName(exePath string) string {
	name := filepath.Base(exePath)
	name = strings.TrimSuffix(name, ".exe")
	if strings.HasSuffix(name, ".test") {
		return "nb"
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || strings.EqualFold(name, ApplicationName) || strings.EqualFold(name, "main") {
		return "nb"
	}
	return name
}
