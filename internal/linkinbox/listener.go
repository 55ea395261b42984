package linkinbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"noticeboard/internal/logger"

	"github.com/gofrs/flock"
)

// ErrClaimed is returned by Claim when another program already listens.
var ErrClaimed = errors.New("inbox already has a listener")

// Claim registers this process as the inbox listener. The claim lasts
// until release is called or the process exits.
func (b *Inbox) Claim() (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return nil, fmt.Errorf("creating inbox dir: %w", err)
	}
	l := flock.New(b.path + ".listener")
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("claiming inbox: %w", err)
	}
	if !ok {
		return nil, ErrClaimed
	}
	return func() { _ = l.Unlock() }, nil
}

// Listening reports whether a running program holds the claim.
func (b *Inbox) Listening() (bool, error) {
	release, err := b.Claim()
	if errors.Is(err, ErrClaimed) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	release()
	return false, nil
}

// Listen claims the inbox and delivers links until stop is called or ctx
// ends. stop waits for the watcher to exit before giving up the claim, so
// no link is drained by a listener that is going away.
func (b *Inbox) Listen(ctx context.Context, deliver func(link string)) (stop func(), err error) {
	release, err := b.Claim()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.Watch(ctx, deliver); err != nil {
			logger.Warn(ctx, "Link inbox unavailable: %v", err)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			release()
		})
	}, nil
}
