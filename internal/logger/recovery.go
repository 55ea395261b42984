package logger

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// TUIShutdown restores the terminal when a panic escapes the TUI. The tui
// package sets it while a program is running.
var TUIShutdown func()

func restoreTerminal() {
	if TUIShutdown != nil {
		TUIShutdown()
	}
	SetTUIEnabled(false)
}

// Recover traps panics and displays them using FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// A second panic while reporting just exits the deferred call.
		defer func() { _ = recover() }()

		restoreTerminal()

		if _, ok := r.(FatalError); ok {
			return
		}

		// We skip 2 frames: Recover + runtime.panic
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}

// RecoverTUI wraps a tea.Cmd in a recovery block that uses FatalWithStackSkip.
func RecoverTUI(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				defer func() { _ = recover() }()

				restoreTerminal()

				if _, ok := r.(FatalError); ok {
					return
				}

				// We skip 2 frames: closure + runtime.panic
				FatalWithStackSkip(ctx, 2, "TUI Panic: %v", r)
			}
		}()
		return cmd()
	}
}
