package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// GetActiveAds fetches the ad configuration and items.
func (c *Client) GetActiveAds(ctx context.Context) (ActiveAds, error) {
	res, err := c.do(ctx, http.MethodGet, "/ads/active", nil)
	if err != nil {
		return ActiveAds{}, err
	}
	return parseActiveAds(res), nil
}

// ListNotifications returns the user's recent notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	res, err := c.do(ctx, http.MethodGet, "/notifications", nil)
	if err != nil {
		return nil, err
	}
	items := res.Get("data")
	if !items.IsArray() {
		items = res.Get("notifications")
	}
	out := make([]Notification, 0, len(items.Array()))
	for _, item := range items.Array() {
		out = append(out, parseNotification(item))
	}
	return out, nil
}

// UnreadCount returns the server's unread notification count.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	res, err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil)
	if err != nil {
		return 0, err
	}
	for _, path := range []string{"count", "unread", "data.count"} {
		if v := res.Get(path); v.Exists() {
			if n := v.Int(); n > 0 {
				return int(n), nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("unread count: %w: no count in response", ErrStatus)
}

// MarkViewed marks the given notifications as viewed.
func (c *Client) MarkViewed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.do(ctx, http.MethodPost, "/notifications/viewed", map[string]any{"ids": ids})
	return err
}

// Login exchanges credentials for a token. The token is not installed on
// the client; the caller decides whether to keep the session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	res, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	token := res.Get("token").String()
	if token == "" {
		return LoginResult{}, fmt.Errorf("login: %w: no token in response", ErrStatus)
	}
	return LoginResult{Token: token, User: parseUser(res.Get("user"))}, nil
}

// LikeListing likes or unlikes a listing.
func (c *Client) LikeListing(ctx context.Context, listingID int64, like bool) (LikeResult, error) {
	action := "unlike"
	if like {
		action = "like"
	}
	res, err := c.do(ctx, http.MethodPost, listingPath(listingID, "like"), map[string]string{"action": action})
	if err != nil {
		return LikeResult{}, err
	}
	return LikeResult{
		Liked:      res.Get("liked").Bool(),
		LikesCount: int(res.Get("likesCount").Int()),
	}, nil
}

// Comments returns a page of comments. An empty cursor starts at the newest.
func (c *Client) Comments(ctx context.Context, listingID int64, cursor string, limit int) (CommentPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	res, err := c.do(ctx, http.MethodGet, listingPath(listingID, "comments")+"?"+q.Encode(), nil)
	if err != nil {
		return CommentPage{}, err
	}
	page := CommentPage{NextCursor: res.Get("nextCursor").String()}
	for _, item := range res.Get("comments").Array() {
		page.Comments = append(page.Comments, parseComment(item))
	}
	return page, nil
}

// AddComment posts a comment and returns it as stored.
func (c *Client) AddComment(ctx context.Context, listingID int64, text string) (Comment, error) {
	res, err := c.do(ctx, http.MethodPost, listingPath(listingID, "comments"), map[string]string{"text": text})
	if err != nil {
		return Comment{}, err
	}
	return parseComment(res.Get("comment")), nil
}

func listingPath(id int64, action string) string {
	return "/listings/" + strconv.FormatInt(id, 10) + "/" + action
}
