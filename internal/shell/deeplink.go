package shell

import (
	"net/url"
	"strconv"
	"strings"

	"noticeboard/internal/constants"
	"noticeboard/internal/logger"

	tea "charm.land/bubbletea/v2"
)

// LinkMatcher recognises the deep links that belong to this app: the
// custom scheme (noticeboard://listing/42) and web links on the app host
// (https://noticeboard.co.zw/listing/42). Links on other schemes or hosts
// are not ours and never resolve.
type LinkMatcher struct {
	Scheme string
	Host   string
}

// ResolveLink resolves raw with the default scheme and host.
func ResolveLink(raw string) (Overlay, bool) {
	return LinkMatcher{}.Resolve(raw)
}

// Resolve maps a deep link onto an overlay. The only recognised shape is a
// "listing" segment followed by a positive decimal id.
func (m LinkMatcher) Resolve(raw string) (Overlay, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Overlay{}, false
	}
	var segments []string
	if u, err := url.Parse(raw); err == nil {
		switch {
		case u.Scheme == "":
		case strings.EqualFold(u.Scheme, m.scheme()):
			if u.Host != "" {
				segments = append(segments, u.Host)
			}
		case isWeb(u.Scheme) && m.ownsHost(u.Hostname()):
		default:
			return Overlay{}, false
		}
		segments = append(segments, splitPath(u.Opaque)...)
		segments = append(segments, splitPath(u.Path)...)
	} else {
		var ok bool
		if segments, ok = m.looseSegments(raw); !ok {
			return Overlay{}, false
		}
	}
	if id, ok := listingID(segments); ok {
		return PostDetail(id), true
	}
	return Overlay{}, false
}

func (m LinkMatcher) scheme() string {
	if m.Scheme == "" {
		return constants.DefaultLinkScheme
	}
	return m.Scheme
}

func (m LinkMatcher) ownsHost(host string) bool {
	want := m.Host
	if want == "" {
		want = constants.DefaultLinkHost
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	return host == strings.ToLower(want)
}

func isWeb(scheme string) bool {
	return strings.EqualFold(scheme, "https") || strings.EqualFold(scheme, "http")
}

// looseSegments splits links that net/url rejects, such as ones with
// stray spaces or bad escapes. The scheme and host rules still apply.
func (m LinkMatcher) looseSegments(raw string) ([]string, bool) {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	i := strings.Index(raw, "://")
	if i < 0 {
		return splitPath(raw), true
	}
	scheme, rest := raw[:i], splitPath(raw[i+3:])
	switch {
	case strings.EqualFold(scheme, m.scheme()):
		return rest, true
	case isWeb(scheme) && len(rest) > 0 && m.ownsHost(rest[0]):
		return rest[1:], true
	}
	return nil, false
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func listingID(segments []string) (int64, bool) {
	for i := 0; i+1 < len(segments); i++ {
		if !strings.EqualFold(segments[i], constants.ListingSegment) {
			continue
		}
		next := segments[i+1]
		if strings.TrimLeft(next, "0123456789") != "" {
			continue
		}
		id, err := strconv.ParseInt(next, 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// ListingURL is the shareable web link for a listing.
func ListingURL(host string, id int64) string {
	if host == "" {
		host = constants.DefaultLinkHost
	}
	return "https://" + host + "/" + constants.ListingSegment + "/" + strconv.FormatInt(id, 10)
}

// ListingDeepLink is the custom-scheme link for a listing.
func ListingDeepLink(scheme string, id int64) string {
	if scheme == "" {
		scheme = constants.DefaultLinkScheme
	}
	return scheme + "://" + constants.ListingSegment + "/" + strconv.FormatInt(id, 10)
}

// HandleLink opens the overlay a deep link points at. Anything that does
// not resolve is ignored, and a repeated link leaves the state unchanged.
func (o *Orchestrator) HandleLink(raw string) tea.Cmd {
	ov, ok := o.links.Resolve(raw)
	if !ok {
		logger.Debug(o.ctx, "Ignoring deep link '%s'", raw)
		return nil
	}
	if !o.adsLoaded {
		o.startupLink = true
	}
	logger.Info(o.ctx, "Deep link -> %s", ov)
	return o.OpenOverlay(ov)
}
