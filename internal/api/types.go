package api

import (
	"time"

	"noticeboard/internal/constants"

	"github.com/tidwall/gjson"
)

// Ad is one interstitial item.
type Ad struct {
	ID        string
	Title     string
	MediaType string
	MediaURL  string
	CTAText   string
	CTAURL    string
}

// AdSettings are the display settings returned with the active ads.
type AdSettings struct {
	SwitchSeconds    int
	ExitDelaySeconds int
	CTADefaultText   string
}

// ActiveAds is the response of GET /ads/active.
type ActiveAds struct {
	Enabled  bool
	Items    []Ad
	Settings AdSettings
}

// Notification is an entry in the user's notification list.
type Notification struct {
	ID        string
	Type      string
	Title     string
	Body      string
	ListingID int64
	Viewed    bool
	Time      time.Time
}

// User is the logged-in identity.
type User struct {
	ID          string `toml:"id"`
	DisplayName string `toml:"display_name"`
	Email       string `toml:"email"`
}

// Name is what the header shows for the user.
func (u User) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Email != "":
		return u.Email
	}
	return u.ID
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  User
}

// LikeResult is the listing's like state after a like or unlike.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// Comment is a listing comment.
type Comment struct {
	ID     string
	Author string
	Text   string
	Time   time.Time
}

// CommentPage is one page of comments. NextCursor is empty on the last page.
type CommentPage struct {
	Comments   []Comment
	NextCursor string
}

func parseAd(r gjson.Result) Ad {
	return Ad{
		ID:        r.Get("id").String(),
		Title:     r.Get("title").String(),
		MediaType: r.Get("mediaType").String(),
		MediaURL:  r.Get("mediaUrl").String(),
		CTAText:   r.Get("ctaText").String(),
		CTAURL:    r.Get("ctaUrl").String(),
	}
}

func parseActiveAds(r gjson.Result) ActiveAds {
	// Some deployments wrap the payload in "data".
	if d := r.Get("data"); d.IsObject() {
		r = d
	}
	out := ActiveAds{
		Enabled: r.Get("enabled").Bool(),
		Settings: AdSettings{
			SwitchSeconds:    positiveOr(r.Get("config.switchSeconds").Int(), constants.DefaultAdSwitchSeconds),
			ExitDelaySeconds: positiveOr(r.Get("config.exitDelaySeconds").Int(), constants.DefaultAdExitDelaySeconds),
			CTADefaultText:   r.Get("config.ctaDefaultText").String(),
		},
	}
	if out.Settings.CTADefaultText == "" {
		out.Settings.CTADefaultText = constants.DefaultCTAText
	}
	for _, item := range r.Get("items").Array() {
		out.Items = append(out.Items, parseAd(item))
	}
	return out
}

func parseNotification(r gjson.Result) Notification {
	n := Notification{
		ID:        r.Get("id").String(),
		Type:      r.Get("type").String(),
		Title:     r.Get("title").String(),
		Body:      r.Get("body").String(),
		ListingID: r.Get("listingId").Int(),
		Viewed:    r.Get("viewed").Bool(),
	}
	if ts := r.Get("time").String(); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			n.Time = t
		}
	}
	return n
}

func parseUser(r gjson.Result) User {
	return User{
		ID:          r.Get("id").String(),
		DisplayName: r.Get("displayName").String(),
		Email:       r.Get("email").String(),
	}
}

func parseComment(r gjson.Result) Comment {
	c := Comment{
		ID:     r.Get("id").String(),
		Author: r.Get("author.displayName").String(),
		Text:   r.Get("text").String(),
	}
	if c.Author == "" {
		c.Author = r.Get("author").String()
	}
	if ts := r.Get("createdAt").String(); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			c.Time = t
		}
	}
	return c
}

func positiveOr(v int64, def int) int {
	if v > 0 {
		return int(v)
	}
	return def
}
