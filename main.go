package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"noticeboard/cmd"
	"noticeboard/internal/config"
	"noticeboard/internal/logger"
	"noticeboard/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	// The log path is read before the full config load in cmd.Execute so
	// that problems loading it are logged too.
	logPath := config.Default().LogFile
	if conf, err := config.LoadAppConfig(); err == nil {
		logPath = conf.LogFile
	}
	slog.SetDefault(logger.NewLogger(logPath))
	ctx := context.Background()

	// Defer cleanup to ensure it runs even if we return early or panic
	defer cleanup(ctx)

	// Recover from logger.FatalError to ensure cleanup runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintf(os.Stderr, "%s did not finish running successfully.\n", version.ApplicationName)
		}
	}()

	groups, err := cmd.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return 1
	}

	return cmd.Execute(ctx, groups)
}

func cleanup(ctx context.Context) {
	logger.Debug(ctx, "Cleaning up...")
	logger.Cleanup()
}
