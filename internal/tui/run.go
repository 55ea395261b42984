package tui

import (
	"context"
	"errors"
	"fmt"

	"noticeboard/internal/api"
	"noticeboard/internal/config"
	"noticeboard/internal/linkinbox"
	"noticeboard/internal/logger"
	"noticeboard/internal/paths"
	"noticeboard/internal/session"
	"noticeboard/internal/shell"

	tea "charm.land/bubbletea/v2"
)

// clientSessions loads the stored session and points the API client at it
// before the orchestrator sees it.
type clientSessions struct {
	store  *session.Store
	client *api.Client
}

func (s clientSessions) Load(ctx context.Context) (session.Session, error) {
	sess, err := s.store.Load(ctx)
	s.client.SetGuestID(sess.GuestID)
	s.client.SetToken(sess.Token)
	return sess, err
}

// Options configure a TUI run.
type Options struct {
	Config config.AppConfig
	// StartLink is the deep link the process was launched with, if any.
	StartLink string
}

// Start runs the TUI until the user exits. Links appended to the inbox by
// other processes are delivered to the running program.
func Start(ctx context.Context, opts Options) error {
	logger.Info(ctx, "TUI Starting...")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := opts.Config
	InitStyles(cfg)
	if err := paths.EnsureStateDir(); err != nil {
		return fmt.Errorf("preparing state dir: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.APITimeout())
	store := session.NewStore("")
	orch := shell.New(ctx, shell.Options{
		Sessions:         clientSessions{store: store, client: client},
		Ads:              client,
		Notifications:    client,
		AdTick:           cfg.AdTick(),
		AdFloor:          cfg.AdFloor(),
		NotificationPoll: cfg.NotificationPoll(),
		Links:            shell.LinkMatcher{Scheme: cfg.Links.Scheme, Host: cfg.Links.Host},
		StartLink:        opts.StartLink,
	})

	model := NewAppModel(ctx, cfg, client, store, orch)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	logger.TUIShutdown = program.Kill
	logger.SetTUIEnabled(true)
	defer func() {
		logger.SetTUIEnabled(false)
		logger.TUIShutdown = nil
	}()

	stopInbox, err := linkinbox.New("").Listen(ctx, func(link string) {
		logger.Debug(ctx, "Link from inbox: %s", link)
		program.Send(shell.LinkMsg{URL: link})
	})
	switch {
	case errors.Is(err, linkinbox.ErrClaimed):
		logger.Warn(ctx, "Another instance receives opened links; this one will not")
	case err != nil:
		logger.Warn(ctx, "Link inbox unavailable: %v", err)
	}

	_, err = program.Run()
	orch.Stop()
	// the watcher is done before the claim goes
	if stopInbox != nil {
		stopInbox()
	}
	cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Info(ctx, "TUI Stopped")
	return nil
}
