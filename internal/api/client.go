// Package api is the client for the Noticeboard social API: ads,
// notifications, login and listing interactions. Responses are read
// permissively with gjson since the backend omits and retypes fields
// freely.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"noticeboard/internal/constants"
	"noticeboard/internal/version"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnauthorized is returned for 401 responses. Callers demote the
	// session to logged out.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStatus is returned for any other non-success response.
	ErrStatus = errors.New("unexpected response")
)

const maxBodyBytes = 4 << 20

// Client talks to the social API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	token   string
	guestID string
}

// NewClient returns a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultAPITimeoutSecs * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token. An empty token removes it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SetGuestID sets the identity sent on requests made without a token.
func (c *Client) SetGuestID(id string) {
	c.mu.Lock()
	c.guestID = id
	c.mu.Unlock()
}

// HasToken reports whether requests are authenticated.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.CommandName+"/"+version.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token, guest := c.token, c.guestID
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if guest != "" {
		req.Header.Set(constants.GuestIDHeader, guest)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading %s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return gjson.Result{}, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("%s %s: %w: HTTP %d %s", method, path, ErrStatus, resp.StatusCode, message(raw))
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%s %s: %w: body is not JSON", method, path, ErrStatus)
	}

	res := gjson.ParseBytes(raw)
	if status := res.Get("status"); status.Exists() && status.String() != "success" {
		return res, fmt.Errorf("%s %s: %w: %s", method, path, ErrStatus, message(raw))
	}
	return res, nil
}

func message(raw []byte) string {
	if gjson.ValidBytes(raw) {
		if m := gjson.GetBytes(raw, "message"); m.Exists() {
			return m.String()
		}
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
