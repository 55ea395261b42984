package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"noticeboard/internal/config"
	"noticeboard/internal/linkinbox"
	"noticeboard/internal/logger"
	"noticeboard/internal/paths"
	"noticeboard/internal/shell"
	"noticeboard/internal/tui"
	"noticeboard/internal/version"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// CmdState holds the state of flags for a single command group.
type CmdState struct {
	DryRun bool
	APIURL string
	Link   string
}

// apply folds the group's overrides into a copy of conf.
func (s CmdState) apply(conf config.AppConfig) config.AppConfig {
	if s.APIURL != "" {
		conf.API.BaseURL = strings.TrimRight(s.APIURL, "/")
	}
	return conf
}

// Execute runs the logic for a sequence of command groups.
// It handles flag application, command switching, and state resetting.
// The returned value is the process exit code.
func Execute(ctx context.Context, groups []CommandGroup) int {
	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Warn(ctx, "Using default configuration: %v", err)
	}
	resetLevels := func() {
		logger.SetLevel(logger.LevelNotice)
		if lvl, ok := logger.ParseLevel(conf.Log.Level); ok {
			logger.FileLevelVar.Set(lvl)
		}
	}
	resetLevels()

	ranCommand := false
	exitCode := 0
	var last CmdState

	for _, group := range groups {
		state := CmdState{}

		for _, flag := range group.Flags {
			name, value, _ := strings.Cut(flag, "=")
			switch name {
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelInfo)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelDebug)
			case "--dry-run":
				state.DryRun = true
			case "--api":
				state.APIURL = value
			case "--link":
				state.Link = value
			}
		}
		last = state

		cmdStr := version.CommandName
		for _, part := range group.FullSlice() {
			cmdStr += " " + part
		}
		logger.Notice(ctx, "%s command: '%s'", version.ApplicationName, cmdStr)
		logger.Debug(ctx, "Execution Args -> State: %+v, Command: %q, Args: %v", state, group.Command, group.Args)

		switch group.Command {
		case "-h", "--help":
			handleHelp(&group)
			ranCommand = true
		case "-V", "--version":
			handleVersion()
			ranCommand = true
		case "--config-show", "--show-config":
			handleConfigShow(ctx, state.apply(conf))
			ranCommand = true
		case "open":
			if code := handleOpen(ctx, &group, &state, state.apply(conf)); code != 0 {
				exitCode = code
			}
			ranCommand = true
		}

		// Flags only apply to their own command. A trailing group without
		// one keeps its levels for the app.
		if group.Command != "" {
			resetLevels()
		}

		if exitCode != 0 {
			return exitCode
		}
	}

	// Flags with no command (or no arguments at all) start the app.
	if !ranCommand {
		if err := tui.Start(ctx, tui.Options{Config: last.apply(conf), StartLink: last.Link}); err != nil {
			logger.Error(ctx, "TUI Error: %v", err)
			return 1
		}
	}

	return exitCode
}

func handleHelp(group *CommandGroup) {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(target)
}

func handleVersion() {
	fmt.Printf("%s [%s]\n", usageApp.Render(version.ApplicationName), version.Version)
	fmt.Printf("commit %s, built %s\n", version.Commit, version.BuildDate)
}

// handleOpen routes a deep link. A running program listening on the inbox
// receives it; otherwise the app starts with the link.
func handleOpen(ctx context.Context, group *CommandGroup, state *CmdState, conf config.AppConfig) int {
	link := group.Args[0]
	target, ok := shell.LinkMatcher{Scheme: conf.Links.Scheme, Host: conf.Links.Host}.Resolve(link)

	if state.DryRun {
		if !ok {
			fmt.Printf("%s: not a listing link\n", link)
			return 1
		}
		fmt.Printf("%s -> %s\n", link, target)
		return 0
	}
	if !ok {
		logger.Warn(ctx, "'%s' is not a listing link; opening the home screen.", link)
	}

	inbox := linkinbox.New("")
	listening, err := inbox.Listening()
	if err != nil {
		logger.Warn(ctx, "Checking for a running %s: %v", version.ApplicationName, err)
	}
	if listening {
		if err := inbox.Append(ctx, link); err != nil {
			logger.Error(ctx, "Handing link to the running %s: %v", version.ApplicationName, err)
			return 1
		}
		logger.Info(ctx, "Sent '%s' to the running %s.", link, version.ApplicationName)
		return 0
	}

	if err := tui.Start(ctx, tui.Options{Config: conf, StartLink: link}); err != nil {
		logger.Error(ctx, "TUI Error: %v", err)
		return 1
	}
	return 0
}

func handleConfigShow(ctx context.Context, conf config.AppConfig) {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := [][]string{
		{"API Base URL", conf.API.BaseURL},
		{"API Timeout", conf.APITimeout().String()},
		{"Link Scheme", conf.Links.Scheme},
		{"Link Host", conf.Links.Host},
		{"Ad Check Interval", conf.AdTick().String()},
		{"Ad Minimum Interval", conf.AdFloor().String()},
		{"Notification Poll", conf.NotificationPoll().String()},
		{"Accent", conf.UI.Accent},
		{"Log File", conf.LogFile},
		{"Log Level", conf.Log.Level},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Option", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	logger.Info(ctx, "Configuration options stored in '%s':", paths.GetConfigFilePath())
	fmt.Fprintln(os.Stdout, t.Render())
}
