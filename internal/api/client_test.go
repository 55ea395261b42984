package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestGetActiveAdsAppliesDefaults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ads/active", r.URL.Path)
		_, _ = w.Write([]byte(`{"enabled":true,"items":[{"id":7,"title":"Cafe","mediaType":"image","ctaUrl":"https://x.test"}],"config":{"switchSeconds":"0"}}`))
	})

	ads, err := c.GetActiveAds(context.Background())
	require.NoError(t, err)
	assert.True(t, ads.Enabled)
	require.Len(t, ads.Items, 1)
	assert.Equal(t, "7", ads.Items[0].ID)
	assert.Equal(t, "https://x.test", ads.Items[0].CTAURL)
	assert.Equal(t, 8, ads.Settings.SwitchSeconds)
	assert.Equal(t, 3, ads.Settings.ExitDelaySeconds)
	assert.Equal(t, "Learn more", ads.Settings.CTADefaultText)
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotGuest string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotGuest = r.Header.Get("X-Guest-Id")
		_, _ = w.Write([]byte(`{"status":"success","count":2}`))
	})
	c.SetGuestID("guest-1")

	_, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "guest-1", gotGuest)

	c.SetToken("tok")
	n, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Empty(t, gotGuest)
}

func TestUnauthorizedAndStatusErrors(t *testing.T) {
	status := http.StatusUnauthorized
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"error","message":"bad id"}`))
	})

	_, err := c.ListNotifications(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	status = http.StatusInternalServerError
	_, err = c.ListNotifications(context.Background())
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "nope")

	status = http.StatusOK
	_, err = c.LikeListing(context.Background(), 1, true)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "bad id")
}

func TestListNotificationsAndMarkViewed(t *testing.T) {
	var marked []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notifications":
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"id":"a","type":"comment","listingId":"42","viewed":false,"time":"2026-01-02T03:04:05Z"},
				{"id":"b","viewed":true}
			]}`))
		case "/notifications/viewed":
			assert.Equal(t, http.MethodPost, r.Method)
			var body struct{ IDs []string }
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			marked = body.IDs
			_, _ = w.Write([]byte(`{"status":"success"}`))
		default:
			http.NotFound(w, r)
		}
	})

	items, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(42), items[0].ListingID)
	assert.False(t, items[0].Viewed)
	assert.Equal(t, 2026, items[0].Time.Year())

	require.NoError(t, c.MarkViewed(context.Background(), []string{"a"}))
	assert.Equal(t, []string{"a"}, marked)
	require.NoError(t, c.MarkViewed(context.Background(), nil))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			_, _ = w.Write([]byte(`{"status":"error","message":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","token":"t1","user":{"id":"u1","displayName":"Rudo"}}`))
	})

	res, err := c.Login(context.Background(), "rudo", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, "Rudo", res.User.Name())
	assert.False(t, c.HasToken())

	_, err = c.Login(context.Background(), "rudo", "wrong")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestCommentsPaging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/9/comments", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		if r.URL.Query().Get("cursor") == "" {
			_, _ = w.Write([]byte(`{"status":"success","comments":[{"id":"1","text":"hi","author":{"displayName":"Tari"}}],"nextCursor":"c2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","comments":[{"id":"2","text":"yo","author":"Anon"}]}`))
	})

	page, err := c.Comments(context.Background(), 9, "", 20)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "Tari", page.Comments[0].Author)
	assert.Equal(t, "c2", page.NextCursor)

	page, err = c.Comments(context.Background(), 9, page.NextCursor, 20)
	require.NoError(t, err)
	assert.Equal(t, "Anon", page.Comments[0].Author)
	assert.Empty(t, page.NextCursor)
}
