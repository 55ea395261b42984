package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"noticeboard/internal/api"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.toml"))
}

func TestLoadCreatesStableGuestID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, first.LoggedIn())
	_, err = uuid.Parse(first.GuestID)
	require.NoError(t, err)

	second, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.GuestID, second.GuestID)
}

func TestSaveAndClearKeepGuestID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	guest, err := s.Load(ctx)
	require.NoError(t, err)

	saved, err := s.Save(ctx, "tok", api.User{ID: "u1", DisplayName: "Rudo"})
	require.NoError(t, err)
	assert.Equal(t, guest.GuestID, saved.GuestID)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.LoggedIn())
	assert.Equal(t, "Rudo", loaded.User.DisplayName)

	cleared, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, cleared.LoggedIn())
	assert.Equal(t, guest.GuestID, cleared.GuestID)

	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Token)
	assert.Empty(t, loaded.User.ID)
}

func TestCorruptFileLoadsAsGuest(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("token = [broken"), 0o600))

	sess, err := s.Load(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, sess.GuestID)
	assert.False(t, sess.LoggedIn())

	again, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sess.GuestID, again.GuestID)
}
