package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kanaverse/animeplay/backend/internal/models"
	"github.com/kanaverse/animeplay/backend/internal/storage"
)

func newNotificationStore(t *testing.T) (*NotificationStore, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewNotificationStore(store), store
}

func inbox(t *testing.T, s *NotificationStore) []models.Notification {
	t.Helper()
	notifications, err := s.List(context.Background())
	require.NoError(t, err)
	return notifications
}

func unread(t *testing.T, s *NotificationStore) int {
	t.Helper()
	count, err := s.UnreadCount(context.Background())
	require.NoError(t, err)
	return count
}

func TestFreshInboxSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	s, store := newNotificationStore(t)

	notifications := inbox(t, s)
	require.Len(t, notifications, 3)
	require.Equal(t, 2, unread(t, s))

	require.Equal(t, "New Episode Available", notifications[0].Title)
	require.Equal(t, "episode", notifications[0].Category)
	require.False(t, notifications[0].Read)
	require.False(t, notifications[1].Read)
	require.True(t, notifications[2].Read)

	// reading alone must not persist the seed
	_, err := store.Get(ctx, notificationsKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMarkReadPersistsInbox(t *testing.T) {
	ctx := context.Background()
	s, store := newNotificationStore(t)

	require.NoError(t, s.MarkRead(ctx, 1))
	require.Equal(t, 1, unread(t, s))

	_, err := store.Get(ctx, notificationsKey)
	require.NoError(t, err)

	// unknown ids mark nothing but still persist
	require.NoError(t, s.MarkRead(ctx, 99))
	require.Equal(t, 1, unread(t, s))
}

func TestMarkAllReadThenRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotificationStore(t)

	require.NoError(t, s.MarkAllRead(ctx))
	require.Equal(t, 0, unread(t, s))

	require.NoError(t, s.Remove(ctx, 2))
	require.Equal(t, 0, unread(t, s))
	require.Len(t, inbox(t, s), 2)
}

func TestRemoveAllLeavesInboxEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotificationStore(t)

	for _, n := range inbox(t, s) {
		require.NoError(t, s.Remove(ctx, n.ID))
	}

	// an explicitly empty inbox stays empty instead of reseeding
	require.Empty(t, inbox(t, s))
	require.Equal(t, 0, unread(t, s))
}

func TestUnreadCountTracksSequence(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotificationStore(t)

	require.Equal(t, 2, unread(t, s))

	require.NoError(t, s.MarkRead(ctx, 2))
	require.Equal(t, 1, unread(t, s))

	require.NoError(t, s.Remove(ctx, 1))
	require.Equal(t, 0, unread(t, s))

	require.NoError(t, s.MarkAllRead(ctx))
	require.Equal(t, 0, unread(t, s))
	require.Len(t, inbox(t, s), 2)
}

func TestCorruptInboxSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	s, store := newNotificationStore(t)

	require.NoError(t, store.Set(ctx, notificationsKey, []byte("not json")))
	require.Len(t, inbox(t, s), 3)
	require.Equal(t, 2, unread(t, s))

	// the first mutation repairs the persisted value
	require.NoError(t, s.MarkRead(ctx, 1))
	require.Equal(t, 1, unread(t, s))
}

func TestNotificationStoreReturnsBackendFault(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	healthy := NewNotificationStore(backing)
	require.NoError(t, healthy.MarkRead(ctx, 1))

	faulty := NewNotificationStore(&faultStore{Store: backing, getErr: errors.New("connection refused")})

	_, err := faulty.List(ctx)
	require.Error(t, err)

	_, err = faulty.UnreadCount(ctx)
	require.Error(t, err)

	require.Error(t, faulty.MarkRead(ctx, 2))
	require.Error(t, faulty.MarkAllRead(ctx))
	require.Error(t, faulty.Remove(ctx, 1))

	// the persisted inbox was not replaced with the seed
	require.Equal(t, 1, unread(t, healthy))
	require.Len(t, inbox(t, healthy), 3)
}
