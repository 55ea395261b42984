package shell

import (
	"context"

	"noticeboard/internal/api"
	"noticeboard/internal/session"
)

// SessionService loads the persisted session at startup.
type SessionService interface {
	Load(ctx context.Context) (session.Session, error)
}

// AdsService fetches the interstitial configuration.
type AdsService interface {
	GetActiveAds(ctx context.Context) (api.ActiveAds, error)
}

// NotificationService provides the two unread sources.
type NotificationService interface {
	UnreadCount(ctx context.Context) (int, error)
	ListNotifications(ctx context.Context) ([]api.Notification, error)
}
