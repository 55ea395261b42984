// Package linkinbox hands deep links from `nb open` to a running nb.
//
// Links are appended one per line to a file in the state directory. The
// running program watches that file, drains it and delivers each link.
package linkinbox

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"noticeboard/internal/logger"
	"noticeboard/internal/paths"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
)

const lockRetry = 25 * time.Millisecond

// Inbox is the link file plus its lock.
type Inbox struct {
	path string
	lock *flock.Flock
}

// New returns the inbox at path, or the default location when path is "".
func New(path string) *Inbox {
	if path == "" {
		path = paths.GetLinkInboxPath()
	}
	return &Inbox{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the inbox file location.
func (b *Inbox) Path() string {
	return b.path
}

func (b *Inbox) locked(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("creating inbox dir: %w", err)
	}
	ok, err := b.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("locking inbox: %w", err)
	}
	if !ok {
		return fmt.Errorf("locking inbox: %w", ctx.Err())
	}
	defer func() { _ = b.lock.Unlock() }()
	return fn()
}

// Append queues link for the running program.
func (b *Inbox) Append(ctx context.Context, link string) error {
	link = strings.TrimSpace(link)
	if link == "" || strings.ContainsAny(link, "\r\n") {
		return fmt.Errorf("invalid link %q", link)
	}
	return b.locked(ctx, func() error {
		f, err := os.OpenFile(b.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening inbox: %w", err)
		}
		if _, err := f.WriteString(link + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing inbox: %w", err)
		}
		return f.Close()
	})
}

// Drain returns the queued links in order and empties the inbox.
func (b *Inbox) Drain(ctx context.Context) ([]string, error) {
	var links []string
	err := b.locked(ctx, func() error {
		data, err := os.ReadFile(b.path)
		if errors.Is(err, os.ErrNotExist) || len(data) == 0 {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading inbox: %w", err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				links = append(links, line)
			}
		}
		if err := os.Truncate(b.path, 0); err != nil {
			return fmt.Errorf("truncating inbox: %w", err)
		}
		return sc.Err()
	})
	return links, err
}

// Watch delivers queued links to deliver until ctx is cancelled. Links
// left over from before the watch started are discarded, since they were
// meant for a program that is gone. Watch closes its watcher before
// returning.
func (b *Inbox) Watch(ctx context.Context, deliver func(link string)) error {
	if stale, err := b.Drain(ctx); err != nil {
		return err
	} else if len(stale) > 0 {
		logger.Debug(ctx, "Discarded %d stale inbox links", len(stale))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating inbox watcher: %w", err)
	}
	defer watcher.Close()

	// The directory is watched so the inbox may be created after us.
	if err := watcher.Add(filepath.Dir(b.path)); err != nil {
		return fmt.Errorf("watching inbox: %w", err)
	}
	logger.Debug(ctx, "Watching link inbox '%s'", b.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(b.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			links, err := b.Drain(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn(ctx, "Draining link inbox: %v", err)
				continue
			}
			for _, link := range links {
				deliver(link)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "Link inbox watcher: %v", err)
		}
	}
}
