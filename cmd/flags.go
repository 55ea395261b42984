package cmd

import (
	"github.com/spf13/pflag"
)

// InitFlags defines the pflags used for argument validation and help.
func InitFlags() {
	if pflag.Lookup("help") != nil {
		return
	}

	// Modifiers
	pflag.BoolP("verbose", "v", false, "Verbose output")
	pflag.BoolP("debug", "x", false, "Debug output")
	pflag.Bool("dry-run", false, "Resolve links without sending them")
	pflag.String("api", "", "Use this API base URL instead of the configured one")
	pflag.String("link", "", "Open this deep link when the TUI starts")

	// Commands
	pflag.BoolP("help", "h", false, "Show help")
	pflag.BoolP("version", "V", false, "Show version")
	pflag.Bool("config-show", false, "Show configuration")
	pflag.Bool("show-config", false, "Show configuration (alias)")
}
