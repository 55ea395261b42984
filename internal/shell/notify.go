package shell

import (
	"context"
	"errors"
	"time"

	"noticeboard/internal/api"
	"noticeboard/internal/logger"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"
)

// NotificationPoller keeps the unread badge fresh. Both sources are
// fetched concurrently and reconciled with Reconcile.
type NotificationPoller struct {
	Interval     time.Duration
	RefreshDelay time.Duration

	svc NotificationService
}

// Reconcile combines the server count and the local unviewed count. A
// source that failed is nil; when both failed the previous count stands.
func Reconcile(prev int, authoritative, local *int) int {
	var n int
	switch {
	case authoritative == nil && local == nil:
		return prev
	case authoritative == nil:
		n = *local
	case local == nil:
		n = *authoritative
	default:
		n = max(*authoritative, *local)
	}
	return max(0, n)
}

// LocalUnread counts the items not yet viewed.
func LocalUnread(items []api.Notification) int {
	n := 0
	for _, item := range items {
		if !item.Viewed {
			n++
		}
	}
	return n
}

func (p NotificationPoller) schedule(lifetime int) tea.Cmd {
	return tea.Tick(p.Interval, func(time.Time) tea.Msg {
		return notifyTickMsg{lifetime: lifetime}
	})
}

func (p NotificationPoller) scheduleRefresh(lifetime, seq int) tea.Cmd {
	return tea.Tick(p.RefreshDelay, func(time.Time) tea.Msg {
		return notifyRefreshMsg{lifetime: lifetime, seq: seq}
	})
}

func (p NotificationPoller) fetch(ctx context.Context, lifetime int) tea.Cmd {
	if p.svc == nil {
		return nil
	}
	svc := p.svc
	return func() tea.Msg {
		msg := unreadResultMsg{lifetime: lifetime}
		var countErr, listErr error

		var g errgroup.Group
		g.Go(func() error {
			n, err := svc.UnreadCount(ctx)
			if err != nil {
				countErr = err
				return err
			}
			msg.authoritative = &n
			return nil
		})
		g.Go(func() error {
			items, err := svc.ListNotifications(ctx)
			if err != nil {
				listErr = err
				return err
			}
			n := LocalUnread(items)
			msg.local = &n
			return nil
		})
		if err := g.Wait(); err != nil {
			logger.Debug(ctx, "Notification refresh incomplete: count=%v list=%v", countErr, listErr)
		}

		msg.unauthorized = errors.Is(countErr, api.ErrUnauthorized) || errors.Is(listErr, api.ErrUnauthorized)
		return msg
	}
}

func (o *Orchestrator) refreshUnread() tea.Cmd {
	return o.poller.fetch(o.ctx, o.lifetime)
}

func (o *Orchestrator) onUnreadResult(msg unreadResultMsg) tea.Cmd {
	prev := o.unread
	o.unread = Reconcile(o.unread, msg.authoritative, msg.local)
	if o.unread != prev {
		logger.Debug(o.ctx, "Unread %d -> %d", prev, o.unread)
	}

	if msg.unauthorized && o.session.LoggedIn() {
		logger.Notice(o.ctx, "Session rejected by the server, logging out")
		o.session.Token = ""
		o.SetAuthenticated(false)
		return func() tea.Msg { return SessionExpiredMsg{} }
	}
	return nil
}
