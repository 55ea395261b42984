// Package session persists the login session and the guest identity in
// the XDG state directory.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"noticeboard/internal/api"
	"noticeboard/internal/paths"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// Session is the persisted identity. A session without a Token is a guest.
type Session struct {
	Token   string   `toml:"token"`
	User    api.User `toml:"user"`
	GuestID string   `toml:"guest_id"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Store reads and writes session.toml. Every access holds an flock so a
// running TUI and `nb open` never see a half-written file.
type Store struct {
	path string
	lock *flock.Flock
}

const lockRetry = 25 * time.Millisecond

// NewStore returns a store for path. An empty path uses the default
// location under the state directory.
func NewStore(path string) *Store {
	if path == "" {
		path = paths.GetSessionFilePath()
	}
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	ok, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("locking session: %w", err)
	}
	if !ok {
		return fmt.Errorf("locking session: %w", ctx.Err())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *Store) read() (Session, error) {
	var sess Session
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return sess, nil
	}
	if err != nil {
		return sess, fmt.Errorf("reading session: %w", err)
	}
	if err := toml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}
	return sess, nil
}

func (s *Store) write(sess Session) error {
	data, err := toml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// Load returns the stored session. A guest id is created and persisted the
// first time it is missing. A corrupt file loads as a fresh guest session.
func (s *Store) Load(ctx context.Context) (Session, error) {
	var sess Session
	err := s.withLock(ctx, func() error {
		var readErr error
		sess, readErr = s.read()
		if sess.GuestID != "" && readErr == nil {
			return nil
		}
		sess.GuestID = uuid.NewString()
		if err := s.write(sess); err != nil {
			return err
		}
		return readErr
	})
	return sess, err
}

// Save stores a logged-in session, keeping the existing guest id.
func (s *Store) Save(ctx context.Context, token string, user api.User) (Session, error) {
	var sess Session
	err := s.withLock(ctx, func() error {
		prev, _ := s.read()
		sess = Session{Token: token, User: user, GuestID: prev.GuestID}
		if sess.GuestID == "" {
			sess.GuestID = uuid.NewString()
		}
		return s.write(sess)
	})
	return sess, err
}

// Clear logs out. The guest id survives.
func (s *Store) Clear(ctx context.Context) (Session, error) {
	var sess Session
	err := s.withLock(ctx, func() error {
		prev, _ := s.read()
		sess = Session{GuestID: prev.GuestID}
		if sess.GuestID == "" {
			sess.GuestID = uuid.NewString()
		}
		return s.write(sess)
	})
	return sess, err
}
