package linkinbox

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newInbox(t *testing.T) *Inbox {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "links.inbox"))
}

func TestAppendThenDrain(t *testing.T) {
	ctx := context.Background()
	b := newInbox(t)

	links, err := b.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)

	require.NoError(t, b.Append(ctx, "noticeboard://listing/1"))
	require.NoError(t, b.Append(ctx, "  https://noticeboard.co.zw/listing/2  "))

	links, err = b.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"noticeboard://listing/1", "https://noticeboard.co.zw/listing/2"}, links)

	links, err = b.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestAppendRejectsBadInput(t *testing.T) {
	b := newInbox(t)
	assert.Error(t, b.Append(context.Background(), "   "))
	assert.Error(t, b.Append(context.Background(), "a\nb"))
}

func TestWatchDeliversUntilCancelled(t *testing.T) {
	b := newInbox(t)
	require.NoError(t, b.Append(context.Background(), "noticeboard://listing/99"))

	ctx, cancel := context.WithCancel(context.Background())
	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- b.Watch(ctx, func(link string) {
			mu.Lock()
			got = append(got, link)
			mu.Unlock()
		})
	}()

	// Retry until the watcher is registered and picks the link up.
	require.Eventually(t, func() bool {
		_ = b.Append(context.Background(), "noticeboard://listing/5")
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, got, "noticeboard://listing/99")
	for _, link := range got {
		assert.Equal(t, "noticeboard://listing/5", link)
	}
}

func TestClaimIsExclusive(t *testing.T) {
	b := newInbox(t)

	listening, err := b.Listening()
	require.NoError(t, err)
	assert.False(t, listening)

	release, err := b.Claim()
	require.NoError(t, err)

	_, err = New(b.Path()).Claim()
	assert.ErrorIs(t, err, ErrClaimed)

	listening, err = New(b.Path()).Listening()
	require.NoError(t, err)
	assert.True(t, listening)

	release()
	listening, err = b.Listening()
	require.NoError(t, err)
	assert.False(t, listening)
}

func TestListenStopsWatcherBeforeReleasingClaim(t *testing.T) {
	ctx := context.Background()
	b := newInbox(t)
	sender := New(b.Path())

	got := make(chan string, 16)
	stop, err := b.Listen(ctx, func(link string) {
		select {
		case got <- link:
		default:
		}
	})
	require.NoError(t, err)

	listening, err := sender.Listening()
	require.NoError(t, err)
	assert.True(t, listening)

	// links appended before the watcher is up are discarded as stale
	require.Eventually(t, func() bool {
		require.NoError(t, sender.Append(ctx, "noticeboard://listing/5"))
		select {
		case link := <-got:
			return link == "noticeboard://listing/5"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	stop()
	stop()

	listening, err = sender.Listening()
	require.NoError(t, err)
	assert.False(t, listening)

	// nothing drains the inbox once stop has returned
	_, _ = sender.Drain(ctx)
	require.NoError(t, sender.Append(ctx, "noticeboard://listing/6"))
	time.Sleep(100 * time.Millisecond)
	links, err := sender.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"noticeboard://listing/6"}, links)
}

func TestListenRefusesSecondListener(t *testing.T) {
	b := newInbox(t)
	stop, err := b.Listen(context.Background(), func(string) {})
	require.NoError(t, err)
	defer stop()

	_, err = New(b.Path()).Listen(context.Background(), func(string) {})
	assert.ErrorIs(t, err, ErrClaimed)
}
