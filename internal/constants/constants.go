package constants

// File Names
const (
	AppConfigFileName = "noticeboard.toml"
	SessionFileName   = "session.toml"
	LinkInboxFileName = "links.inbox"
	LogFileName       = "nb.log"
)

// Link defaults
const (
	DefaultLinkScheme = "noticeboard"
	DefaultLinkHost   = "noticeboard.co.zw"
	ListingSegment    = "listing"
)

// API defaults
const (
	DefaultAPIBaseURL     = "https://noticeapi.noticeboard.co.zw"
	DefaultAPITimeoutSecs = 10
	GuestIDHeader         = "X-Guest-Id"
)

// Scheduler defaults, in seconds
const (
	DefaultAdTickSeconds        = 5
	DefaultAdFloorSeconds       = 30
	DefaultNotifyPollSeconds    = 30
	DefaultAdSwitchSeconds      = 8
	DefaultAdExitDelaySeconds   = 3
	MinAdRotateSeconds          = 2
	NotificationRefreshDelaySec = 1
)

// DefaultCTAText is shown on ads that carry no call-to-action label.
const DefaultCTAText = "Learn more"
