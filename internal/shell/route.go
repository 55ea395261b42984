package shell

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// TabKey identifies a bottom-navigation destination.
type TabKey string

const (
	TabHome        TabKey = "home"
	TabBusinesses  TabKey = "businesses"
	TabEvents      TabKey = "events"
	TabPlaces      TabKey = "places"
	TabRestaurants TabKey = "restaurants"
	TabAccount     TabKey = "account"
	TabCreate      TabKey = "create"
	TabWebView     TabKey = "webview"
)

// Tabs lists the tabs in bottom-bar order.
var Tabs = []TabKey{
	TabHome,
	TabBusinesses,
	TabEvents,
	TabPlaces,
	TabRestaurants,
	TabAccount,
	TabCreate,
	TabWebView,
}

// ParseTab returns the tab named s.
func ParseTab(s string) (TabKey, bool) {
	key := TabKey(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Tabs {
		if t == key {
			return t, true
		}
	}
	return "", false
}

// FullBleed tabs take their own params, so switching to them keeps the
// current screen params. They render without the tab bar.
func (t TabKey) FullBleed() bool {
	return t == TabCreate || t == TabWebView
}

// ScreenKey identifies a full-page route inside a tab's stack.
type ScreenKey string

const (
	ScreenMain   ScreenKey = "main"
	ScreenSearch ScreenKey = "search"
)

func parseScreen(s string) (ScreenKey, bool) {
	switch ScreenKey(strings.ToLower(strings.TrimSpace(s))) {
	case ScreenMain:
		return ScreenMain, true
	case ScreenSearch:
		return ScreenSearch, true
	}
	return "", false
}

// Params carries route parameters.
type Params map[string]any

func (p Params) clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// String returns the string parameter key, or "".
func (p Params) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// Int64 returns the integer parameter key. Numbers decoded from JSON and
// numeric strings are accepted.
func (p Params) Int64(key string) (int64, bool) {
	switch v := p[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// OverlayKind tags the Overlay variant.
type OverlayKind int

const (
	OverlayPostDetail OverlayKind = iota + 1
	OverlayComments
	OverlayNotifications
	OverlayAds
	OverlayWebView
	OverlayHelpSupport
	OverlayTerms
	OverlayPrivacy
	OverlayEditProfile
)

var overlayNames = map[OverlayKind]string{
	OverlayPostDetail:    "PostDetail",
	OverlayComments:      "Comments",
	OverlayNotifications: "Notifications",
	OverlayAds:           "Ads",
	OverlayWebView:       "WebView",
	OverlayHelpSupport:   "HelpSupport",
	OverlayTerms:         "Terms",
	OverlayPrivacy:       "Privacy",
	OverlayEditProfile:   "EditProfile",
}

func (k OverlayKind) String() string {
	if name, ok := overlayNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OverlayKind(%d)", int(k))
}

// ParseOverlayKind matches overlay route names exactly ("PostDetail").
// Lowercase names belong to tabs and screens; "webview" is the tab.
func ParseOverlayKind(name string) (OverlayKind, bool) {
	for k, n := range overlayNames {
		if n == strings.TrimSpace(name) {
			return k, true
		}
	}
	return 0, false
}

// Overlay is the single modal route shown above the active tab and screen.
// Only the fields that belong to Kind are set.
type Overlay struct {
	Kind         OverlayKind
	ListingID    int64  // PostDetail, Comments
	ListingTitle string // Comments
	URL          string // WebView
	Title        string // WebView
}

func PostDetail(listingID int64) Overlay {
	return Overlay{Kind: OverlayPostDetail, ListingID: listingID}
}

func Comments(listingID int64, listingTitle string) Overlay {
	return Overlay{Kind: OverlayComments, ListingID: listingID, ListingTitle: listingTitle}
}

func WebView(url, title string) Overlay {
	return Overlay{Kind: OverlayWebView, URL: url, Title: title}
}

func Notifications() Overlay { return Overlay{Kind: OverlayNotifications} }
func Ads() Overlay           { return Overlay{Kind: OverlayAds} }
func HelpSupport() Overlay   { return Overlay{Kind: OverlayHelpSupport} }
func Terms() Overlay         { return Overlay{Kind: OverlayTerms} }
func Privacy() Overlay       { return Overlay{Kind: OverlayPrivacy} }
func EditProfile() Overlay   { return Overlay{Kind: OverlayEditProfile} }

// overlayFromRoute builds an overlay for a navigate(route, params) call.
// Routes that need a listing id or URL are rejected without one.
func overlayFromRoute(kind OverlayKind, params Params) (Overlay, bool) {
	switch kind {
	case OverlayPostDetail:
		id, ok := params.Int64("listingId")
		if !ok || id <= 0 {
			return Overlay{}, false
		}
		return PostDetail(id), true
	case OverlayComments:
		id, ok := params.Int64("listingId")
		if !ok || id <= 0 {
			return Overlay{}, false
		}
		return Comments(id, params.String("listingTitle")), true
	case OverlayWebView:
		url := params.String("url")
		if url == "" {
			return Overlay{}, false
		}
		return WebView(url, params.String("title")), true
	}
	return Overlay{Kind: kind}, true
}

func (o Overlay) String() string {
	switch o.Kind {
	case OverlayPostDetail:
		return fmt.Sprintf("PostDetail{listingId:%d}", o.ListingID)
	case OverlayComments:
		return fmt.Sprintf("Comments{listingId:%d}", o.ListingID)
	case OverlayWebView:
		return fmt.Sprintf("WebView{url:%s}", o.URL)
	}
	return o.Kind.String()
}

// RouteState is everything the renderer needs to decide what is on screen.
type RouteState struct {
	Authenticated bool
	ActiveTab     TabKey
	Screen        ScreenKey
	ScreenParams  Params
	Overlay       *Overlay // nil when no overlay is shown
}

// InitialState is the cold-start route: home tab, main screen, login shown.
func InitialState() RouteState {
	return RouteState{
		ActiveTab:    TabHome,
		Screen:       ScreenMain,
		ScreenParams: Params{},
	}
}

// HasOverlay reports whether the modal slot is occupied.
func (s RouteState) HasOverlay() bool {
	return s.Overlay != nil
}

// OverlayIs reports whether the open overlay is of the given kind.
func (s RouteState) OverlayIs(kind OverlayKind) bool {
	return s.Overlay != nil && s.Overlay.Kind == kind
}

func (s RouteState) clone() RouteState {
	out := s
	out.ScreenParams = s.ScreenParams.clone()
	if s.Overlay != nil {
		ov := *s.Overlay
		out.Overlay = &ov
	}
	return out
}
