package cmd

import (
	"fmt"
	"strings"

	"noticeboard/internal/version"

	"charm.land/lipgloss/v2"
)

var (
	usageCommand = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	usageOption  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	usageApp     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
func PrintHelp(target string) {
	fmt.Print(GetUsage(target))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}
	c := usageCommand.Render
	o := usageOption.Render

	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: %s [%s] [%s] ...", c(appCmd), c("<Flags>"), c("<Command>")))
		printStr("")
		printStr(fmt.Sprintf("%s [%s]", usageApp.Render(version.ApplicationName), version.Version))
		printStr("Browse listings, notifications and your account from the terminal.")
		printStr("Run without a command to start the app.")
		printStr("")
		printStr("Flags apply only to the command that follows them. Flags given")
		printStr("without a command apply to the app itself.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""
	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, opt := range opts {
			if opt == target {
				return true
			}
		}
		return false
	}

	if match("-v", "--verbose") {
		printStr(c("-v --verbose"))
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr(c("-x --debug"))
		printStr("	Debug")
	}
	if match("--dry-run") {
		printStr(c("--dry-run"))
		printStr("	With " + c("open") + ", print where a link leads instead of opening it")
	}
	if match("--api", "--api=") {
		printStr(c("--api") + " " + o("<url>"))
		printStr(c("--api=") + o("<url>"))
		printStr("	Talk to this API base URL instead of the configured one")
	}
	if match("--link", "--link=") {
		printStr(c("--link") + " " + o("<url>"))
		printStr(c("--link=") + o("<url>"))
		printStr("	Open this deep link once the app has started")
	}

	if showAll {
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	if match("open") {
		printStr(c("open") + " " + o("<link>"))
		printStr("	Open a listing link such as " + o("noticeboard://listing/42") + ".")
		printStr("	A running " + appCmd + " shows it; otherwise the app starts on it.")
	}
	if match("--config-show", "--show-config") {
		printStr(c("--config-show"))
		printStr(c("--show-config"))
		printStr("	Shows the current configuration options")
	}
	if match("-h", "--help") {
		printStr(c("-h --help"))
		printStr("	Show this usage information")
		printStr(c("-h --help") + " " + o("<option>"))
		printStr("	Show the usage of the specified option")
	}
	if match("-V", "--version") {
		printStr(c("-V --version"))
		printStr("	Show the version")
	}

	return sb.String()
}
